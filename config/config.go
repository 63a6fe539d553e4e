package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iguana/koalashop/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port  string
	DB    DB
	Kafka Kafka
}

type DB struct {
	database.Config
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

func Load(log *zap.Logger) *Config {
	iamAuth := os.Getenv("DB_IAM_AUTH") == "true"

	cfg := &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:            getEnv("DB_HOST", log),
				Port:            getEnv("DB_PORT", log),
				User:            getEnv("DB_USER", log),
				Name:            getEnv("DB_NAME", log),
				SSLMode:         getEnv("DB_SSLMODE", log),
				IAMAuth:         iamAuth,
				MaxOpenConns:    atoiDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 20),
				MaxIdleConns:    atoiDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 5),
				ConnMaxIdleTime: durationDefault(os.Getenv("DB_CONN_MAX_IDLE"), 30*time.Second),
				ConnMaxLifetime: durationDefault(os.Getenv("DB_CONN_MAX_LIFETIME"), 0),
			},
		},
		Kafka: Kafka{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   os.Getenv("KAFKA_TOPIC_ORDER_EVENTS"),
		},
	}
	cfg.Kafka.Enabled = len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic != ""

	if iamAuth {
		// Password is replaced by a generated auth token at connect time.
		cfg.DB.AWSRegion = getEnv("AWS_REGION", log)
	} else {
		cfg.DB.Password = getEnv("DB_PASSWORD", log)
	}

	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func durationDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
