package db

import (
	"errors"
	"fmt"

	"github.com/blacktop/nidsym/internal/model"
	"github.com/blacktop/nidsym/pkg/nid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBatchSize = 1000

// gormStore implements the queries shared by the gorm backed databases.
type gormStore struct {
	db        *gorm.DB
	batchSize int
}

func (g *gormStore) migrate() error {
	return g.db.AutoMigrate(&model.Symbol{})
}

func (g *gormStore) Save(syms []*model.Symbol) error {
	if len(syms) == 0 {
		return nil
	}
	if g.db == nil {
		return fmt.Errorf("database not connected")
	}
	batch := g.batchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "image"}, {Name: "direction"}, {Name: "encoded"}},
		DoUpdates: clause.AssignmentColumns([]string{"module", "library", "nid", "updated_at"}),
	}).CreateInBatches(syms, batch).Error
}

func (g *gormStore) Get(image string, dir nid.Direction, encoded string) (*model.Symbol, error) {
	if g.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	var sym model.Symbol
	if err := g.db.Where("image = ? AND direction = ? AND encoded = ?", image, dir.String(), encoded).
		First(&sym).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &sym, nil
}

func (g *gormStore) List(image string) ([]*model.Symbol, error) {
	if g.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	var syms []*model.Symbol
	if err := g.db.Where("image = ?", image).
		Order("direction").Order("encoded").
		Find(&syms).Error; err != nil {
		return nil, err
	}
	return syms, nil
}

func (g *gormStore) Close() error {
	if g.db == nil {
		return nil
	}
	db, err := g.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
