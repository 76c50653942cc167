package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=dgdorm password=dgdorm dbname=dgdorm port=5432 sslmode=disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`

	JWTSecret string `env:"JWT_SECRET,required"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// BanCascade configuration
	BanCascade struct {
		// Maximum attempts for the bulk property update
		MaxRetries int `env:"BAN_CASCADE_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BAN_CASCADE_RETRY_DELAY" envDefault:"2"`
	}

	// Origins allowed by the CORS middleware
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
