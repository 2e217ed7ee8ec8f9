package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	SessionSecret string `env:"SESSION_JWT_SECRET"`
	WebhookSecret string `env:"CLERK_WEBHOOK_SECRET"`
	// WebhookWorkers is the dispatcher's shard count; 0 means the default.
	WebhookWorkers int `env:"WEBHOOK_WORKERS, default=0"`

	Mongo    MongoConfig
	Redis    RedisConfig
	ImageKit ImageKitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ImageKitConfig struct {
	URLEndpoint string `env:"IK_URL_ENDPOINT"`
	PublicKey   string `env:"IK_PUBLIC_KEY"`
	PrivateKey  string `env:"IK_PRIVATE_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
