package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "../../../internal/metadata/testdata/eboot.yaml"

// run executes the root command with fresh flag values and viper state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetEnvPrefix("nidsym")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("database.path")

	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
			viper.BindPFlag(c.Name()+"."+f.Name, f)
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "--json", "--", "BA", "-----------")
	require.NoError(t, err)

	var got []decodedField
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, uint64(64), got[0].Value)
	assert.Equal(t, uint64(1<<64-1), got[1].Value)

	_, err = run(t, "decode", "A_")
	assert.Error(t, err)
}

func TestDecodeDashLeadingField(t *testing.T) {
	out, err := run(t, "decode", "--json", "--", "-A")
	require.NoError(t, err)

	var got []decodedField
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "-A", got[0].Field)
	assert.Equal(t, uint64(63<<6), got[0].Value)
	assert.Empty(t, got[0].Error)
}

func TestRefCommand(t *testing.T) {
	out, err := run(t, "ref", "--json", "AAA#AAB#AAC")
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.EqualValues(t, 1, got[0]["library_id"])
	assert.EqualValues(t, 2, got[0]["module_id"])

	_, err = run(t, "ref", "AAA#AAB")
	assert.Error(t, err)
}

func TestRefDashLeadingReference(t *testing.T) {
	out, err := run(t, "ref", "--json", "--", "-----------#B#C")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "-----------#B#C", got[0]["symbol"])
	assert.EqualValues(t, 1, got[0]["library_id"])
	assert.EqualValues(t, 2, got[0]["module_id"])
}

func TestResolveDashLeadingSymbol(t *testing.T) {
	out, err := run(t, "resolve", "--json", testImage, "--", "-----------#B#B")
	require.NoError(t, err)

	var got []resolvedSymbol
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].SymbolInfo)
	assert.Equal(t, uint64(1<<64-1), got[0].NID)
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "resolve", "--json", testImage, "BA#C#C")
	require.NoError(t, err)
	var got []resolvedSymbol
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].SymbolInfo)
	assert.Equal(t, "libSceNet", got[0].Module)

	out, err = run(t, "resolve", "--json", "--export", testImage, "PfccT7qURYE#A#A")
	require.NoError(t, err)
	assert.Contains(t, out, `"module": "eboot"`)

	// the metadata lists one unknown module and one malformed import
	_, err = run(t, "resolve", "--all", testImage)
	assert.ErrorContains(t, err, "failed to resolve 2 of 5")
}

func TestLookupCommand(t *testing.T) {
	out, err := run(t, "lookup", testImage, "import-modules", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "libSceNet")

	out, err = run(t, "lookup", "--encoded", testImage, "import-libraries", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "libSceNet")

	_, err = run(t, "lookup", testImage, "import-modules", "9")
	assert.Error(t, err)
	_, err = run(t, "lookup", testImage, "symbols", "1")
	assert.Error(t, err)
}

func TestIndexSaveAndQuery(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nidsym.db")
	t.Setenv("NIDSYM_DATABASE_PATH", dbPath)

	out, err := run(t, "index", "--exports", "--save", testImage)
	require.NoError(t, err)
	assert.Contains(t, out, "libSceLibcInternal")

	out, err = run(t, "query", "--json", "eboot.bin", "BA#C#C")
	require.NoError(t, err)
	assert.Contains(t, out, `"module": "libSceNet"`)

	out, err = run(t, "query", "eboot.bin")
	require.NoError(t, err)
	assert.Contains(t, out, "PfccT7qURYE#A#A")

	out, err = run(t, "query", "--json", "--", "eboot.bin", "-----------#B#B")
	require.NoError(t, err)
	assert.Contains(t, out, `"nid": "FFFFFFFFFFFFFFFF"`)
}
