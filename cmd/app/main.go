package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"pharmadispatch/cmd"
	httpin "pharmadispatch/internal/adapters/in/http"
	"pharmadispatch/internal/adapters/out/inventoryhttp"
	"pharmadispatch/internal/adapters/out/kafkaevents"
	"pharmadispatch/internal/adapters/out/postgres/addressrepo"
	"pharmadispatch/internal/adapters/out/postgres/assignmentrepo"
	"pharmadispatch/internal/adapters/out/postgres/orderrepo"
	"pharmadispatch/internal/adapters/out/postgres/paymentrepo"
	"pharmadispatch/internal/adapters/out/postgres/riderrepo"
	"pharmadispatch/internal/adapters/out/postgres/zonerepo"
	"pharmadispatch/internal/adapters/out/redistracker"
	"pharmadispatch/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	publisher, err := kafkaevents.NewKafkaEventPublisher(
		configs.KafkaBrokers, configs.KafkaEventsTopic)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	tracker, err := redistracker.NewRedisLocationTracker(redisClient, redistracker.DefaultPositionTTL)
	if err != nil {
		log.Fatalf("Failed to create location tracker: %v", err)
	}

	inventory, err := inventoryhttp.NewHTTPInventoryGateway(configs.InventoryServiceURL)
	if err != nil {
		log.Fatalf("Failed to create inventory gateway: %v", err)
	}

	root := cmd.NewCompositionRoot(gormDB, publisher, tracker, inventory, logger)

	jobManager := jobs.NewJobManager(
		root.CreateBatchOrdersCommandHandler(),
		root.ZoneRepository(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, tracker, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		DBHost:              envOrDefault("DB_HOST", "localhost"),
		DBPort:              envOrDefault("DB_PORT", "5432"),
		DBUser:              envOrDefault("DB_USER", "postgres"),
		DBPassword:          envOrDefault("DB_PASSWORD", "postgres"),
		DBName:              envOrDefault("DB_NAME", "pharmadispatch"),
		DBSslMode:           envOrDefault("DB_SSLMODE", "disable"),
		KafkaBrokers:        strings.Split(envOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaEventsTopic:    envOrDefault("KAFKA_EVENTS_TOPIC", "pharmadispatch.events"),
		RedisAddr:           envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		InventoryServiceURL: envOrDefault("INVENTORY_SERVICE_URL", "http://localhost:8081"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&riderrepo.RiderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.AssignmentOrderDTO{},
		&zonerepo.ZoneDTO{},
		&paymentrepo.PaymentDTO{},
		&addressrepo.AddressDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, tracker *redistracker.RedisLocationTracker, port string) {
	server := httpin.NewServer(
		httpin.OrderHandlers{
			Create:          root.CreateCreateOrderCommandHandler(),
			UpdateStatus:    root.CreateUpdateOrderStatusCommandHandler(),
			Cancel:          root.CreateCancelOrderCommandHandler(),
			ApplyDiscount:   root.CreateApplyDiscountCommandHandler(),
			RegisterAddress: root.CreateRegisterAddressCommandHandler(),
			GeocodeAddress:  root.CreateGeocodeAddressCommandHandler(),
		},
		httpin.DispatchHandlers{
			BatchOrders:   root.CreateBatchOrdersCommandHandler(),
			Accept:        root.CreateAcceptAssignmentCommandHandler(),
			MarkPickedUp:  root.CreateMarkPickedUpCommandHandler(),
			StartDelivery: root.CreateStartDeliveryCommandHandler(),
			Complete:      root.CreateCompleteAssignmentCommandHandler(),
			Cancel:        root.CreateCancelAssignmentCommandHandler(),
		},
		httpin.PaymentHandlers{
			Create:   root.CreateCreatePaymentCommandHandler(),
			Process:  root.CreateProcessPaymentCommandHandler(),
			Complete: root.CreateCompletePaymentCommandHandler(),
			Fail:     root.CreateFailPaymentCommandHandler(),
			Cancel:   root.CreateCancelPaymentCommandHandler(),
			Refund:   root.CreateRefundPaymentCommandHandler(),
		},
		httpin.AdminHandlers{
			RegisterRider:        root.CreateRegisterRiderCommandHandler(),
			ApproveRider:         root.CreateApproveRiderCommandHandler(),
			SuspendRider:         root.CreateSuspendRiderCommandHandler(),
			SetRiderAvailability: root.CreateSetRiderAvailabilityCommandHandler(),
			CreateZone:           root.CreateCreateZoneCommandHandler(),
			SetZoneActive:        root.CreateSetZoneActiveCommandHandler(),
		},
		httpin.QueryHandlers{
			UnassignedOrders:  root.CreateGetUnassignedOrdersQueryHandler(),
			ActiveAssignments: root.CreateGetActiveAssignmentsQueryHandler(),
			OrderTracking:     root.CreateGetOrderTrackingQueryHandler(),
		},
		tracker,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
