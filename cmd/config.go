package cmd

// Config carries every externally supplied setting of the service.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers     []string
	KafkaEventsTopic string

	RedisAddr     string
	RedisPassword string

	InventoryServiceURL string
}
