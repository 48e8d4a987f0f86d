package metadata

import (
	"math"
	"testing"

	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	img, err := Load("testdata/eboot.yaml")
	require.NoError(t, err)

	assert.Equal(t, ModuleInfo{
		Name:            "eboot.bin",
		ImportModules:   3,
		ImportLibraries: 3,
		ExportModules:   1,
		ExportLibraries: 1,
		ImportSymbols:   5,
		ExportSymbols:   1,
	}, img.ModuleInfo())

	ctx := img.Context()
	assert.Equal(t, "eboot.bin", ctx.Name)
	assert.Equal(t, 3, ctx.Imports.Len())

	info, err := ctx.ImportSymbol("-----------#B#B")
	require.NoError(t, err)
	assert.Equal(t, nid.SymbolInfo{
		Module:  "libSceLibcInternal",
		Library: "libSceLibcInternal",
		NID:     math.MaxUint64,
	}, info)

	info, err = ctx.ImportSymbol("BA#C#C")
	require.NoError(t, err)
	assert.Equal(t, "libSceNet", info.Module)
	assert.Equal(t, uint64(64), info.NID)

	// unknown module id 3
	_, err = ctx.ImportSymbol("BA#C#D")
	assert.ErrorIs(t, err, nid.ErrNotFound)
	_, err = nid.ResolveImport(ctx, "BA#C#D")
	assert.ErrorIs(t, err, nid.ErrUnknownModule)

	exp, err := nid.ResolveExport(ctx, img.ExportSymbols[0])
	require.NoError(t, err)
	assert.Equal(t, "eboot", exp.Module)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tcs := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"empty tables", "name: a\n", false},
		{"unknown key", "name: a\nbogus: 1\n", true},
		{"nameless entry", "import_modules:\n  - id: 1\n", true},
		{"bad id", "import_modules:\n  - id: x\n    name: m\n", true},
		{"duplicate id", "import_modules:\n  - id: 1\n    name: a\n  - id: 1\n    name: b\n", false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			img, err := Parse([]byte(tc.data))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, img.Context())
		})
	}
}

func TestDuplicateIDFirstWins(t *testing.T) {
	img, err := Parse([]byte("import_modules:\n  - id: 1\n    name: a\n  - id: 1\n    name: b\n"))
	require.NoError(t, err)
	name, err := img.Context().ImportModules.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "a", name)
}
