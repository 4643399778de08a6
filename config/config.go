package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Mongo      MongoConfig
	GCS        GCSConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Elastic    ElasticsearchConfig
	Inventory  InventoryConfig
	Payment    PaymentConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type ElasticsearchConfig struct {
	Enabled   bool
	Addresses []string
	Username  string
	Password  string
}

type InventoryConfig struct {
	BaseURL string
	Timeout int
}

type PaymentConfig struct {
	BaseURL string
	Timeout int
}

// StorefrontConfig carries merchandising tunables that would otherwise be
// hard-coded: the low-stock badge threshold and the shipping package model
// ("stacked" or "bounding-box").
type StorefrontConfig struct {
	LowStockThreshold int
	PackagingModel    string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8086"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "omnipos_storefront"),
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", "omnipos-storefront-media"),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_STOCK", "inventory.stock-levels"),
			GroupID: getEnv("KAFKA_GROUP_STOREFRONT", "storefront-cms"),
		},
		Elastic: ElasticsearchConfig{
			Enabled:   getEnvBool("ELASTICSEARCH_ENABLED", true),
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		Inventory: InventoryConfig{
			BaseURL: getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082"),
			Timeout: getEnvInt("INVENTORY_SERVICE_TIMEOUT", 10),
		},
		Payment: PaymentConfig{
			BaseURL: getEnv("PAYMENT_SERVICE_URL", "http://localhost:8084"),
			Timeout: getEnvInt("PAYMENT_SERVICE_TIMEOUT", 10),
		},
		Storefront: StorefrontConfig{
			LowStockThreshold: getEnvInt("STOREFRONT_LOW_STOCK_THRESHOLD", 5),
			PackagingModel:    getEnv("STOREFRONT_PACKAGING_MODEL", "stacked"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
