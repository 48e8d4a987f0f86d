package utils

import (
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

var normalPadding = cli.Default.Padding

// ConvertStrToInt converts an input string to uint64
func ConvertStrToInt(intStr string) (uint64, error) {
	intStr = strings.ToLower(strings.TrimSpace(intStr))

	if strings.HasPrefix(intStr, "0x") || strings.ContainsAny(intStr, "abcdef") {
		intStr = strings.TrimPrefix(intStr, "0x")
		if out, err := strconv.ParseUint(intStr, 16, 64); err == nil {
			return out, err
		}
		log.Warn("assuming given integer is in decimal")
	}
	return strconv.ParseUint(intStr, 10, 64)
}

// Indent returns a log func that pads its output to the given nesting level
func Indent(f func(s string), level int) func(string) {
	return func(s string) {
		cli.Default.Padding = normalPadding * level
		f(s)
		cli.Default.Padding = normalPadding
	}
}

// Unique returns s without duplicates, keeping the first occurrence of each item
func Unique(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	var out []string
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
