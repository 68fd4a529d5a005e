package app

import (
	"os"
	"strconv"
)

// Config описывает настройки запуска платформы.
// Пустой PostgresDSN переключает хранилище на in-memory реализацию,
// пустые KafkaBrokers и RedisAddr выключают соответствующие слои.
type Config struct {
	HTTPAddr     string
	OpsAddr      string
	PostgresDSN  string
	KafkaBrokers string
	RedisAddr    string
	SeedOnStart  bool
}

// DefaultConfig возвращает базовые адреса API и служебного листенера.
func DefaultConfig() Config {
	return Config{
		HTTPAddr: ":8080",
		OpsAddr:  ":9090",
	}
}

// ConfigFromEnv читает конфигурацию из окружения поверх значений по умолчанию.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if addr := os.Getenv("FASTFOOD_HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if addr := os.Getenv("FASTFOOD_OPS_ADDR"); addr != "" {
		cfg.OpsAddr = addr
	}
	cfg.PostgresDSN = os.Getenv("FASTFOOD_POSTGRES_DSN")
	cfg.KafkaBrokers = os.Getenv("FASTFOOD_KAFKA_BROKERS")
	cfg.RedisAddr = os.Getenv("FASTFOOD_REDIS_ADDR")

	if raw := os.Getenv("FASTFOOD_SEED_ON_START"); raw != "" {
		if seed, err := strconv.ParseBool(raw); err == nil {
			cfg.SeedOnStart = seed
		}
	}

	return cfg
}
