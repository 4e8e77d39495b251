package config

import (
	"os"
)

type Config struct {
	HTTP_PORT     string `env:"HTTP_PORT"`
	DATA_DIR      string `env:"DATA_DIR"`
	KAFKA_BROKERS string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC   string `env:"KAFKA_TOPIC"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:     os.Getenv("HTTP_PORT"),
		DATA_DIR:      os.Getenv("DATA_DIR"),
		KAFKA_BROKERS: os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:   os.Getenv("KAFKA_TOPIC"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.DATA_DIR == "" {
		cfg.DATA_DIR = "data"
	}
	if cfg.KAFKA_TOPIC == "" {
		cfg.KAFKA_TOPIC = "kitchen.tickets"
	}

	return cfg, nil
}
