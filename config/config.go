package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds everything main needs to wire the process. Leaf adapters
// (JWT middleware, mailer, payment client) read their own secrets from the
// environment at use-time.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	DB DB `envPrefix:"DB_"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	BackupDir string `env:"BACKUP_DIR" envDefault:"./backup/uploads"`

	// Upload backups run daily at this hour, keeping BackupRetentionDays
	// of history.
	BackupHour          int `env:"BACKUP_HOUR" envDefault:"2"`
	BackupRetentionDays int `env:"BACKUP_RETENTION_DAYS" envDefault:"4"`
}

type DB struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"carvercraft"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DSN builds a postgres DSN from the discrete DB_* variables. DATABASE_URL
// takes precedence when set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port,
	)
}
