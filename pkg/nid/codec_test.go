package nid

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetIndex(t *testing.T) {
	tcs := map[byte]int{
		'A': 0,
		'Z': 25,
		'a': 26,
		'z': 51,
		'0': 52,
		'9': 61,
		'+': 62,
		'-': 63,
	}
	for c, want := range tcs {
		got, ok := AlphabetIndex(c)
		if !ok || got != want {
			t.Errorf("AlphabetIndex(%q) = %d, %v, want %d", c, got, ok, want)
		}
	}
	for _, c := range []byte{'#', '/', '_', '=', ' ', 0, 0xff} {
		if _, ok := AlphabetIndex(c); ok {
			t.Errorf("AlphabetIndex(%q) should not be valid", c)
		}
	}
}

func TestDecodeFieldSingleCharacter(t *testing.T) {
	for i := 0; i < len(Alphabet); i++ {
		got, err := DecodeField(Alphabet[i : i+1])
		require.NoError(t, err)
		assert.Equal(t, uint64(i), got, "field %q", Alphabet[i:i+1])
	}
}

func TestDecodeField(t *testing.T) {
	tcs := map[string]uint64{
		"":            0,
		"A":           0,
		"B":           1,
		"BA":          64,
		"--":          4095,
		"AAAAAAAAAB":  1,
		"AAAAAAAAAAA": 0,
		"AAAAAAAAAAB": 0, // tail keeps the top 4 bits only
		"AAAAAAAAAAE": 1,
		"AAAAAAAAABA": 16,
		"BAAAAAAAAAA": 1 << 58,
		"-----------": math.MaxUint64,
	}
	for in, want := range tcs {
		got, err := DecodeField(in)
		if err != nil {
			t.Errorf("DecodeField(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("DecodeField(%q) = %#x, want %#x", in, got, want)
		}
	}
}

func TestDecodeFieldTooLong(t *testing.T) {
	for _, in := range []string{
		strings.Repeat("A", MaxFieldLen+1),
		strings.Repeat("-", 32),
		"!!!!!!!!!!!!", // length is checked before content
	} {
		_, err := DecodeField(in)
		assert.ErrorIs(t, err, ErrTooLong, "field %q", in)
		assert.NotErrorIs(t, err, ErrInvalidCharacter, "field %q", in)
	}
}

func TestDecodeFieldInvalidCharacter(t *testing.T) {
	tcs := map[string]int{
		"#":        0,
		"AB_C":     2,
		"AAAAAAA=": 7,
		"é":        0,
		"A A":      1,
	}
	for in, pos := range tcs {
		v, err := DecodeField(in)
		require.ErrorIs(t, err, ErrInvalidCharacter, "field %q", in)
		assert.Zero(t, v)

		var ferr *FieldError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, pos, ferr.Pos, "field %q", in)
		assert.Equal(t, in, ferr.Text)
	}
}

func TestDecodeSymbolReference(t *testing.T) {
	ref, err := DecodeSymbolReference("AAA#AAB#AAC")
	require.NoError(t, err)
	assert.Equal(t, Reference{NID: 0, LibraryID: 1, ModuleID: 2}, ref)

	ref, err = DecodeSymbolReference("-----------#B#C")
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), ref.NID)
	assert.Equal(t, uint32(1), ref.LibraryID)
	assert.Equal(t, uint32(2), ref.ModuleID)
}

// Library and module ids wider than 32 bits are truncated, not rejected.
func TestDecodeSymbolReferenceTruncatesIDs(t *testing.T) {
	ref, err := DecodeSymbolReference("A#BAAAAAB#BAAAAAC")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ref.LibraryID)
	assert.Equal(t, uint32(2), ref.ModuleID)
}

func TestDecodeSymbolReferenceMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"AAA",
		"AAA#AAB",
		"AAA#AAB#AAC#AAD",
		"AAA#AAB#AAC#",
		"#AAB#AAC",
		"AAA##AAC",
		"AAA#AAB#",
		"##",
	} {
		_, err := DecodeSymbolReference(in)
		assert.ErrorIs(t, err, ErrMalformedReference, "reference %q", in)
	}
}

func TestDecodeSymbolReferenceFailFast(t *testing.T) {
	tcs := []struct {
		in    string
		field string
		err   error
	}{
		{"A_#A_#A_", "nid", ErrInvalidCharacter},
		{"AAAAAAAAAAAA#A_#A", "nid", ErrTooLong},
		{"A#A_#AAAAAAAAAAAA", "library", ErrInvalidCharacter},
		{"A#A#A_", "module", ErrInvalidCharacter},
		{"A#A#AAAAAAAAAAAA", "module", ErrTooLong},
	}
	for _, tc := range tcs {
		_, err := DecodeSymbolReference(tc.in)
		require.ErrorIs(t, err, tc.err, "reference %q", tc.in)

		var ferr *FieldError
		require.True(t, errors.As(err, &ferr), "reference %q", tc.in)
		assert.Equal(t, tc.field, ferr.Field, "reference %q", tc.in)
	}
}
