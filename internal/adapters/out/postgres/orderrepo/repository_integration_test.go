package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"pharmadispatch/internal/adapters/out/postgres/orderrepo"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(lines ...order.Line) *order.Order {
	if len(lines) == 0 {
		line, err := order.NewLine(kernel.NewUUID(), "Salbutamol inhaler", 1, 450, true)
		suite.Require().NoError(err)
		lines = append(lines, line)
	}

	point, err := kernel.NewGeoPoint(8.2280, 124.2452)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &point, 49, lines)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()

	lineA, err := order.NewLine(kernel.NewUUID(), "Amoxicillin 500mg", 2, 120, true)
	suite.Require().NoError(err)
	lineB, err := order.NewLine(kernel.NewUUID(), "Vitamin C 500mg", 1, 80, false)
	suite.Require().NoError(err)

	original := suite.newOrder(lineA, lineB)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(original.ID()))
	suite.Equal(original.Number(), restored.Number())
	suite.True(strings.HasPrefix(restored.Number(), kernel.OrderRefPrefix))
	suite.Equal(order.StatusPending, restored.Status())
	suite.InDelta(original.TotalAmount(), restored.TotalAmount(), 1e-9)

	restoredLines := restored.Lines()
	suite.Require().Len(restoredLines, 2)
	suite.Equal("Amoxicillin 500mg", restoredLines[0].ProductName())
	suite.Equal("Vitamin C 500mg", restoredLines[1].ProductName())
	suite.True(restoredLines[0].PrescriptionRequired())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_WithoutDestination() {
	ctx := context.Background()

	line, err := order.NewLine(kernel.NewUUID(), "Loperamide 2mg", 1, 60, false)
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, 49, []order.Line{line})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.False(restored.HasDestination())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusAndDiscount() {
	ctx := context.Background()

	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.TransitionTo(order.StatusAccepted))
	suite.Require().NoError(o.ApplyDiscount(40))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAccepted, restored.Status())
	suite.InDelta(40, restored.DiscountAmount(), 1e-9)
	suite.InDelta(o.TotalAmount(), restored.TotalAmount(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder() {
	ctx := context.Background()

	o := suite.newOrder()
	err := suite.repository.Update(ctx, o)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReadyForPickup_OldestFirst() {
	ctx := context.Background()

	first := suite.newOrder()
	second := suite.newOrder()
	pending := suite.newOrder()

	for _, o := range []*order.Order{first, second} {
		suite.Require().NoError(o.TransitionTo(order.StatusAccepted))
		suite.Require().NoError(o.TransitionTo(order.StatusPreparing))
		suite.Require().NoError(o.TransitionTo(order.StatusReadyForPickup))
	}

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	ready, err := suite.repository.GetAllReadyForPickup(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(ready, 2)
	for _, o := range ready {
		suite.Equal(order.StatusReadyForPickup, o.Status())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByIDs_MissingIDFails() {
	ctx := context.Background()

	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := suite.repository.GetAllByIDs(ctx, []kernel.UUID{o.ID(), kernel.NewUUID()})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
