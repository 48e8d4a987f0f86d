package nid

import (
	"fmt"
	"maps"
	"slices"
)

// Index maps encoded import symbol text to its resolved SymbolInfo.
//
// Only successful resolutions are stored, so a miss means the symbol was either
// never seen or failed to resolve.
type Index struct {
	syms map[string]SymbolInfo
}

// NewIndex returns an index holding a copy of syms.
func NewIndex(syms map[string]SymbolInfo) *Index {
	return &Index{syms: maps.Clone(syms)}
}

// BuildImportIndex resolves every symbol against the import tables of c and
// keeps the ones that resolved.
func BuildImportIndex(c *Context, symbols []string) *Index {
	idx := &Index{syms: make(map[string]SymbolInfo, len(symbols))}
	for _, sym := range symbols {
		if _, ok := idx.syms[sym]; ok {
			continue
		}
		info, err := ResolveImport(c, sym)
		if err != nil {
			continue
		}
		idx.syms[sym] = info
	}
	return idx
}

// Lookup returns the cached resolution of text.
func (x *Index) Lookup(text string) (SymbolInfo, error) {
	if x != nil {
		if info, ok := x.syms[text]; ok {
			return info, nil
		}
	}
	return SymbolInfo{}, fmt.Errorf("symbol %q: %w", text, ErrNotFound)
}

// Len returns the number of indexed symbols.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.syms)
}

// Symbols returns the indexed encoded symbols in sorted order.
func (x *Index) Symbols() []string {
	if x == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(x.syms))
}
