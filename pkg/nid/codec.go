package nid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxFieldLen is the widest encoded field orbis-ld emits.
	MaxFieldLen = 11
	// Alphabet maps a 6-bit group to its encoded symbol.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-"

	refSeparator = "#"
	refFields    = 3
)

var (
	// ErrTooLong is returned for a field longer than MaxFieldLen characters.
	ErrTooLong = errors.New("encoded field too long")
	// ErrInvalidCharacter is returned for a field containing a symbol outside of Alphabet.
	ErrInvalidCharacter = errors.New("invalid character in encoded field")
	// ErrMalformedReference is returned when a reference does not split into exactly three non-empty fields.
	ErrMalformedReference = errors.New("malformed symbol reference")
)

// alphabetIndex holds the 6-bit value of every byte, -1 when the byte is not in Alphabet.
var alphabetIndex = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// AlphabetIndex returns the 6-bit value encoded by c.
func AlphabetIndex(c byte) (int, bool) {
	idx := alphabetIndex[c]
	return int(idx), idx >= 0
}

// FieldError describes a field that could not be decoded.
type FieldError struct {
	Field string // "nid", "library" or "module"; empty for a standalone field
	Text  string
	Pos   int // offset of the offending character, -1 if not character related
	Err   error
}

func (e *FieldError) Error() string {
	var sb strings.Builder
	if e.Field != "" {
		sb.WriteString(e.Field)
		sb.WriteString(" ")
	}
	fmt.Fprintf(&sb, "field %q: %v", e.Text, e.Err)
	if e.Pos >= 0 {
		fmt.Fprintf(&sb, " at offset %d", e.Pos)
	}
	return sb.String()
}

func (e *FieldError) Unwrap() error { return e.Err }

// DecodeField unpacks a single encoded field.
//
// The first ten symbols contribute 6 bits each. The eleventh only carries the
// top 4 bits of its value, which makes a full width field exactly 64 bits.
// An empty field decodes to 0.
func DecodeField(text string) (uint64, error) {
	if len(text) > MaxFieldLen {
		return 0, &FieldError{Text: text, Pos: -1, Err: ErrTooLong}
	}

	var value uint64
	for i := 0; i < len(text); i++ {
		idx := alphabetIndex[text[i]]
		if idx < 0 {
			return 0, &FieldError{Text: text, Pos: i, Err: ErrInvalidCharacter}
		}
		if i < MaxFieldLen-1 {
			value = value<<6 | uint64(idx)
		} else {
			value = value<<4 | uint64(idx>>2)
		}
	}

	return value, nil
}

// Reference is a decoded symbol reference.
type Reference struct {
	NID       uint64 `json:"nid"`
	LibraryID uint32 `json:"library_id"`
	ModuleID  uint32 `json:"module_id"`
}

func (r Reference) String() string {
	return fmt.Sprintf("nid=%#016x lib=%d mod=%d", r.NID, r.LibraryID, r.ModuleID)
}

// DecodeSymbolReference splits an encoded "<nid>#<library>#<module>" reference
// and decodes its fields left to right, stopping at the first bad field.
//
// Library and module identifiers are truncated to 32 bits without a range check.
func DecodeSymbolReference(text string) (Reference, error) {
	parts := strings.Split(text, refSeparator)
	if len(parts) != refFields {
		return Reference{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformedReference, text, len(parts), refFields)
	}
	for i, part := range parts {
		if part == "" {
			return Reference{}, fmt.Errorf("%w: %q has an empty field at position %d", ErrMalformedReference, text, i)
		}
	}

	var ref Reference

	nid, err := decodeNamedField("nid", parts[0])
	if err != nil {
		return Reference{}, err
	}
	ref.NID = nid

	lib, err := decodeNamedField("library", parts[1])
	if err != nil {
		return Reference{}, err
	}
	ref.LibraryID = uint32(lib)

	mod, err := decodeNamedField("module", parts[2])
	if err != nil {
		return Reference{}, err
	}
	ref.ModuleID = uint32(mod)

	return ref, nil
}

func decodeNamedField(name, text string) (uint64, error) {
	v, err := DecodeField(text)
	if err != nil {
		var ferr *FieldError
		if errors.As(err, &ferr) {
			ferr.Field = name
		}
		return 0, err
	}
	return v, nil
}
