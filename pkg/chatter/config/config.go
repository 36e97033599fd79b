package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the process configuration, read from the environment.
type Config struct {
	DBPath string `envconfig:"CHATTER_DB_PATH" default:"chatter.db"`
	Port   string `envconfig:"PORT" default:"8080"`
	// Bootstrap admin created on first start when no admin exists
	AdminEmail    string `envconfig:"CHATTER_ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `envconfig:"CHATTER_ADMIN_PASSWORD" default:"Adm1nP@ss!"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
