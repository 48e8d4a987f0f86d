package nid

import (
	"errors"
	"fmt"

	"github.com/apex/log"
)

var (
	// ErrDecodeFailed wraps the codec error of a reference that could not be decoded.
	ErrDecodeFailed = errors.New("failed to decode symbol")
	// ErrUnknownModule is returned when the module id is absent from the module table.
	ErrUnknownModule = errors.New("unknown module")
	// ErrUnknownLibrary is returned when the library id is absent from the library table.
	ErrUnknownLibrary = errors.New("unknown library")
)

// Direction selects the import or export identifier tables of a Context.
type Direction uint8

const (
	Import Direction = iota
	Export
)

func (d Direction) String() string {
	switch d {
	case Import:
		return "import"
	case Export:
		return "export"
	default:
		return "unknown"
	}
}

// SymbolInfo is a fully resolved symbol reference.
type SymbolInfo struct {
	Module  string `json:"module"`
	Library string `json:"library"`
	NID     uint64 `json:"nid"`
}

func (s SymbolInfo) String() string {
	return fmt.Sprintf("%s::%s::%#016x", s.Library, s.Module, s.NID)
}

// Context holds the identifier tables of a single loaded module image.
// It is populated once by the loader and only read afterwards.
type Context struct {
	Name string

	ImportModules   Lookuper
	ImportLibraries Lookuper
	ExportModules   Lookuper
	ExportLibraries Lookuper

	// Imports caches resolved import symbols, see BuildImportIndex.
	Imports *Index
}

// Tables returns the module and library tables used for dir.
func (c *Context) Tables(dir Direction) (mods, libs Lookuper) {
	if c == nil {
		return nil, nil
	}
	if dir == Export {
		return c.ExportModules, c.ExportLibraries
	}
	return c.ImportModules, c.ImportLibraries
}

// ImportSymbol looks text up in the precomputed import index without decoding it.
func (c *Context) ImportSymbol(text string) (SymbolInfo, error) {
	if c == nil {
		return SymbolInfo{}, fmt.Errorf("symbol %q: %w", text, ErrNotFound)
	}
	return c.Imports.Lookup(text)
}

// ResolveImport resolves an encoded import symbol against the import tables of c.
func ResolveImport(c *Context, text string) (SymbolInfo, error) {
	mods, libs := c.Tables(Import)
	return Resolve(text, mods, libs)
}

// ResolveExport resolves an encoded export symbol against the export tables of c.
func ResolveExport(c *Context, text string) (SymbolInfo, error) {
	mods, libs := c.Tables(Export)
	return Resolve(text, mods, libs)
}

// Resolve decodes text and names its module and library using mods and libs.
// Decoding, the module lookup and the library lookup run in that order and the
// first failure is returned; a partial result is never returned.
func Resolve(text string, mods, libs Lookuper) (SymbolInfo, error) {
	ref, err := DecodeSymbolReference(text)
	if err != nil {
		err = fmt.Errorf("%w %q: %w", ErrDecodeFailed, text, err)
		logFailure("decode", text, err)
		return SymbolInfo{}, err
	}

	modName, err := lookup(mods, uint64(ref.ModuleID))
	if err != nil {
		err = fmt.Errorf("%w %d for %q: %w", ErrUnknownModule, ref.ModuleID, text, err)
		logFailure("module", text, err)
		return SymbolInfo{}, err
	}

	libName, err := lookup(libs, uint64(ref.LibraryID))
	if err != nil {
		err = fmt.Errorf("%w %d for %q: %w", ErrUnknownLibrary, ref.LibraryID, text, err)
		logFailure("library", text, err)
		return SymbolInfo{}, err
	}

	return SymbolInfo{
		Module:  modName,
		Library: libName,
		NID:     ref.NID,
	}, nil
}

func lookup(t Lookuper, id uint64) (string, error) {
	if t == nil {
		return "", fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return t.Lookup(id)
}

func logFailure(stage, text string, err error) {
	log.WithFields(log.Fields{
		"stage":  stage,
		"symbol": text,
	}).WithError(err).Debug("failed to resolve symbol")
}
