package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string `env:"DB_HOST,required"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER,required"`
	Password string `env:"DB_PASSWORD,required"`
	Name     string `env:"DB_NAME,required"`
}

// DSN собирает строку подключения для pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type S3Config struct {
	Region          string `env:"S3_REGION" envDefault:"ru-central1"`
	Bucket          string `env:"S3_BUCKET,required"`
	AccessKeyID     string `env:"S3_ACCESS_KEY,required"`
	SecretAccessKey string `env:"S3_SECRET_KEY,required"`
	Endpoint        string `env:"S3_ENDPOINT,required"`
}

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	// Домен, с которого раздается cdn-контент
	Domain string `env:"DOMAIN,required"`

	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramBotUsername string `env:"TELEGRAM_BOT_USERNAME,required"`
	AuthSecretKey       string `env:"AUTH_SECRET_KEY,required"`

	DB DBConfig
	S3 S3Config
}

// Load читает .env.local (если есть) и собирает конфигурацию из окружения.
// Конфиг строится один раз на старте и передается в сервисы явно.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
