// Package config is used to load the configuration file
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type database struct {
	Driver    string `json:"driver"`
	Path      string `json:"path"`
	Name      string `json:"database" mapstructure:"database"`
	Host      string `json:"host"`
	Port      string `json:"port"`
	User      string `json:"user"`
	Password  string `json:"password"`
	SSLMode   string `json:"sslmode"`
	BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
}

type cache struct {
	Size int `json:"size"`
}

// Config is the configuration struct
type Config struct {
	Database database `json:"database"`
	Cache    cache    `json:"cache"`
}

func (c *Config) verify() error {
	switch c.Database.Driver {
	case "":
		c.Database.Driver = DriverSqlite
		fallthrough
	case DriverSqlite, DriverMemory:
		if c.Database.Path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("config: failed to get user home directory: %v", err)
			}
			name := "nidsym.db"
			if c.Database.Driver == DriverMemory {
				name = "nidsym.gob"
			}
			c.Database.Path = filepath.Join(home, ".config", "nidsym", name)
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("config: postgres requires host, database and user")
		}
		if c.Database.Port == "" {
			c.Database.Port = "5432"
		}
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.BatchSize < 0 {
		return fmt.Errorf("config: batch_size must not be negative")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("config: cache size must not be negative")
	}
	return nil
}

// LoadConfig loads the configuration file
func LoadConfig() (*Config, error) {
	var c *Config

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %v", err)
	}
	if c == nil {
		c = &Config{}
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("config: failed to verify: %v", err)
	}

	return c, nil
}
