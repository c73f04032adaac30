package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Asana    AsanaConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AsanaConfig struct {
	Token      string
	ProjectGID string
	BaseURL    string
}

type SyncConfig struct {
	// IntervalSeconds is the Asana polling period.
	IntervalSeconds int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Asana:    GetAsanaConfig(),
		Sync:     GetSyncConfig(),
	}
	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Asana: AsanaConfig{
			Token:      "test-token",
			ProjectGID: "1200000000000000",
			BaseURL:    "https://app.asana.com/api/1.0",
		},
		Sync: SyncConfig{IntervalSeconds: 60},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetAsanaConfig() AsanaConfig {
	return AsanaConfig{
		Token:      getEnv("ASANA_TOKEN", ""),
		ProjectGID: getEnv("ASANA_PROJECT_ID", ""),
		BaseURL:    getEnv("ASANA_BASE_URL", "https://app.asana.com/api/1.0"),
	}
}

func GetSyncConfig() SyncConfig {
	interval, err := strconv.Atoi(getEnv("SYNC_INTERVAL_SECONDS", "60"))
	if err != nil {
		panic(err)
	}
	return SyncConfig{IntervalSeconds: interval}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
