package config

import (
	"time"
)

type DatabaseConfig struct {
	URI                    string        `yaml:"uri"`
	Database               string        `yaml:"database"`
	MaxPoolSize            int           `yaml:"max_pool_size"`
	MinPoolSize            int           `yaml:"min_pool_size"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout"`
	SocketTimeout          time.Duration `yaml:"socket_timeout"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout"`
	ConnectMaxAttempts     int           `yaml:"connect_max_attempts"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:                    getEnv("MONGODB_URI", "mongodb://localhost:27017/affiliatenest"),
		Database:               getEnv("MONGODB_DATABASE", "affiliatenest"),
		MaxPoolSize:            getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
		MinPoolSize:            getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
		ConnectTimeout:         getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 30*time.Second),
		SocketTimeout:          getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 45*time.Second),
		ServerSelectionTimeout: getEnvAsDuration("MONGODB_SERVER_SELECTION_TIMEOUT", 30*time.Second),
		ConnectMaxAttempts:     getEnvAsInt("MONGODB_CONNECT_MAX_ATTEMPTS", 5),
	}
}
