// Package colors provides centralized color output with TTY-aware defaults.
//
// Colors are automatically disabled when stdout is not a terminal (piped or
// redirected to a file). This behavior is provided by the underlying fatih/color
// library and respected by default. Use Init() to override based on CLI flags.
package colors

import "github.com/fatih/color"

// Init allows overriding the auto-detected color setting.
//   - forceColor == nil: keep auto-detected value (recommended default)
//   - forceColor == true: force colors on (e.g., --color flag)
//   - forceColor == false: force colors off (e.g., --no-color flag)
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled.
func Enabled() bool {
	return !color.NoColor
}

func Bold() *color.Color  { return color.New(color.Bold) }
func Faint() *color.Color { return color.New(color.Faint) }

func Red() *color.Color   { return color.New(color.FgRed) }
func Green() *color.Color { return color.New(color.FgGreen) }

func BoldHiMagenta() *color.Color { return color.New(color.Bold, color.FgHiMagenta) }
func BoldHiBlue() *color.Color    { return color.New(color.Bold, color.FgHiBlue) }

func FaintCyan() *color.Color    { return color.New(color.Faint, color.FgCyan) }
func FaintMagenta() *color.Color { return color.New(color.Faint, color.FgMagenta) }

// -----------------------------------------------------------------------------
// Symbol output
// -----------------------------------------------------------------------------

// NID formats a 64-bit symbol hash.
var NID = Faint().SprintfFunc()

// Module formats a module name.
var Module = BoldHiMagenta().SprintFunc()

// Library formats a library name.
var Library = FaintCyan().SprintFunc()

// Encoded formats raw encoded symbol text.
var Encoded = Bold().SprintFunc()

// Failure formats a resolution error.
var Failure = Red().SprintFunc()

// Success formats a completed operation.
var Success = Green().SprintFunc()

// Image formats a module image name.
var Image = BoldHiBlue().SprintFunc()

// ID formats a table identifier.
var ID = FaintMagenta().SprintfFunc()
