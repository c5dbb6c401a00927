package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	PostgresURL string `envconfig:"POSTGRES_URL" required:"true"`
	RedisAddr   string `envconfig:"REDIS_ADDR" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Tracing is disabled when JaegerEndpoint is empty.
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT"`
	ServiceName    string `envconfig:"SERVICE_NAME" default:"ticketledger"`
}

// LoadConfig reads the environment, after loading a .env file when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("could not load config: %w", err)
	}

	return cfg, nil
}

func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}
