// Package db provides a database interface and implementations.
package db

import (
	"fmt"

	"github.com/blacktop/nidsym/internal/config"
	"github.com/blacktop/nidsym/internal/model"
	"github.com/blacktop/nidsym/pkg/nid"
)

// Database is the interface that wraps the basic database operations.
type Database interface {
	// Connect connects to the database.
	Connect() error

	// Save inserts the given symbols.
	// It overwrites any previous row for the same image, direction and encoded text.
	Save(syms []*model.Symbol) error

	// Get returns the symbol for the given key.
	// It returns model.ErrNotFound if the key does not exist.
	Get(image string, dir nid.Direction, encoded string) (*model.Symbol, error)

	// List returns all symbols of an image ordered by direction and encoded text.
	List(image string) ([]*model.Symbol, error)

	// Close closes the database.
	Close() error
}

// New returns the Database selected by c. The returned database is not connected.
func New(c *config.Config) (Database, error) {
	switch c.Database.Driver {
	case config.DriverSqlite, "":
		return NewSqlite(c.Database.Path, c.Database.BatchSize)
	case config.DriverMemory:
		return NewInMemory(c.Database.Path)
	case config.DriverPostgres:
		return NewPostgres(
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
			c.Database.SSLMode,
			c.Database.BatchSize,
		)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
}
