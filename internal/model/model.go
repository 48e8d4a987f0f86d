// Package model contains the resolved symbol model for the database.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/blacktop/nidsym/pkg/nid"
)

var ErrNotFound = errors.New("no symbol found")

// Symbol is a resolved import or export symbol of a module image.
type Symbol struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Image     string `gorm:"uniqueIndex:idx_symbol_ref,priority:1;not null" json:"image"`
	Direction string `gorm:"uniqueIndex:idx_symbol_ref,priority:2;not null" json:"direction"`
	Encoded   string `gorm:"uniqueIndex:idx_symbol_ref,priority:3;not null" json:"encoded"`
	Module    string `gorm:"index" json:"module"`
	Library   string `gorm:"index" json:"library"`
	// NID is stored as fixed width hex; database/sql drivers reject uint64 values with the high bit set.
	NID string `gorm:"column:nid;index;size:16" json:"nid"`
}

// NewSymbol creates a row for a resolved symbol.
func NewSymbol(image string, dir nid.Direction, encoded string, info nid.SymbolInfo) *Symbol {
	return &Symbol{
		Image:     image,
		Direction: dir.String(),
		Encoded:   encoded,
		Module:    info.Module,
		Library:   info.Library,
		NID:       fmt.Sprintf("%016X", info.NID),
	}
}

// Info converts the row back into a nid.SymbolInfo.
func (s *Symbol) Info() (nid.SymbolInfo, error) {
	v, err := strconv.ParseUint(s.NID, 16, 64)
	if err != nil {
		return nid.SymbolInfo{}, fmt.Errorf("symbol %s: invalid nid %q: %w", s.Encoded, s.NID, err)
	}
	return nid.SymbolInfo{
		Module:  s.Module,
		Library: s.Library,
		NID:     v,
	}, nil
}
