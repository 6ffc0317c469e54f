package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Throttle ThrottleConfig
}

// JWTConfig holds the single symmetric signing key and token shape. The key
// is read once at startup and handed to the issuer by value; nothing reads
// it again at call time.
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET"`
	Issuer          string `env:"JWT_ISSUER,           default=todo-api"`
	ExpirationHours int    `env:"JWT_EXPIRATION_HOURS, default=24"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=todo_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig optionally seeds a default administrator account at startup.
// Both fields must be set for seeding to happen.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// ThrottleConfig bounds failed login attempts per email.
type ThrottleConfig struct {
	MaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	WindowMinutes int `env:"LOGIN_WINDOW_MINUTES, default=15"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
