package assignmentrepo

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func activeStatuses() []string {
	return []string{
		dispatch.StatusAssigned.String(),
		dispatch.StatusAccepted.String(),
		dispatch.StatusPickedUp.String(),
		dispatch.StatusDelivering.String(),
	}
}

// Add saves a new assignment and its order links to the database. The
// partial unique index on active order links rejects the insert when any
// order is already on a live assignment, whichever transaction gets there
// first.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *dispatch.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrAlreadyAssigned
	}
	return err
}

// Update saves an existing assignment including its per-order stamps.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *dispatch.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ports.ErrAlreadyAssigned
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("pickup_seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("assignment", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every assignment still in flight.
func (r *GormAssignmentRepository) GetAllActive(ctx context.Context) ([]*dispatch.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("pickup_seq") }).
		Find(&dtos, "status IN ?", activeStatuses()).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*dispatch.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, aggregate)
	}
	return assignments, nil
}

// GetActiveByOrder retrieves the active assignment carrying the given order.
func (r *GormAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*dispatch.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("pickup_seq") }).
		Joins("JOIN assignment_orders ao ON ao.assignment_id = assignments.id").
		Where("ao.order_id = ? AND assignments.status IN ?", orderID.Bytes(), activeStatuses()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("active assignment for order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// ActiveOrderIDs returns the IDs of orders on active assignments. The active
// assignment rows are locked for update so concurrent batching passes
// serialize on them; passes that overlap on orders with no active rows to
// lock are caught by the active-link unique index at insert instead.
func (r *GormAssignmentRepository) ActiveOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	var lockedIDs []AssignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Find(&lockedIDs, "status IN ?", activeStatuses()).Error
	if err != nil {
		return nil, err
	}
	if len(lockedIDs) == 0 {
		return []kernel.UUID{}, nil
	}

	var links []AssignmentOrderDTO
	err = r.db.WithContext(ctx).
		Find(&links, "assignment_id IN ?", assignmentIDs(lockedIDs)).Error
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(links))
	for _, link := range links {
		id, idErr := kernel.UUIDFromBytes(link.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderIDs = append(orderIDs, id)
	}
	return orderIDs, nil
}

func assignmentIDs(dtos []AssignmentDTO) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}
	return ids
}
