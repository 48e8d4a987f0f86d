package db

import (
	"encoding/gob"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/blacktop/nidsym/internal/model"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/pkg/errors"
)

// Memory is a database that stores data in memory and persists it to a gob file on Close.
type Memory struct {
	Symbols map[string]*model.Symbol
	Path    string

	mu sync.RWMutex
}

// NewInMemory creates a new in-memory database.
func NewInMemory(path string) (Database, error) {
	if path == "" {
		return nil, errors.New("'path' is required")
	}
	return &Memory{
		Symbols: make(map[string]*model.Symbol),
		Path:    path,
	}, nil
}

func memKey(image, dir, encoded string) string {
	return strings.Join([]string{image, dir, encoded}, "\x00")
}

// Connect loads a previously saved file, if there is one.
func (m *Memory) Connect() error {
	f, err := os.Open(m.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := gob.NewDecoder(f).Decode(&m.Symbols); err != nil {
		return errors.Wrapf(err, "failed to decode %s", m.Path)
	}
	return nil
}

// Save inserts the given symbols.
// It overwrites any previous row for the same image, direction and encoded text.
func (m *Memory) Save(syms []*model.Symbol) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range syms {
		c := *s
		m.Symbols[memKey(c.Image, c.Direction, c.Encoded)] = &c
	}
	return nil
}

// Get returns the symbol for the given key.
// It returns model.ErrNotFound if the key does not exist.
func (m *Memory) Get(image string, dir nid.Direction, encoded string) (*model.Symbol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.Symbols[memKey(image, dir.String(), encoded)]
	if !ok {
		return nil, model.ErrNotFound
	}
	c := *s
	return &c, nil
}

// List returns all symbols of an image ordered by direction and encoded text.
func (m *Memory) List(image string) ([]*model.Symbol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var syms []*model.Symbol
	for _, s := range m.Symbols {
		if s.Image == image {
			c := *s
			syms = append(syms, &c)
		}
	}
	slices.SortFunc(syms, func(a, b *model.Symbol) int {
		if c := strings.Compare(a.Direction, b.Direction); c != 0 {
			return c
		}
		return strings.Compare(a.Encoded, b.Encoded)
	})
	return syms, nil
}

// Close writes the symbols to Path.
func (m *Memory) Close() error {
	f, err := os.Create(m.Path)
	if err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := gob.NewEncoder(f).Encode(m.Symbols); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode symbols to %s", m.Path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", m.Path)
	}
	return nil
}
