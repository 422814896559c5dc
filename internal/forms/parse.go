package forms

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"strmctl/internal/panel"
)

var hexColorPattern = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)

// ParseColor converts "#RRGGBB" or "RRGGBB" (any case) into an opaque RGBA.
// Anything else yields opaque black.
func ParseColor(value string) panel.RGBA {
	match := hexColorPattern.FindStringSubmatch(value)
	if match == nil {
		return panel.OpaqueBlack
	}
	channel := func(hex string) int {
		v, _ := strconv.ParseUint(hex, 16, 8)
		return int(v)
	}
	return panel.RGBA{R: channel(match[1]), G: channel(match[2]), B: channel(match[3]), A: 255}
}

// FormatColor renders an RGBA as "#rrggbb" (alpha is dropped).
func FormatColor(c panel.RGBA) string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseInt reads the leading decimal integer of value the way a browser's
// parseInt does: leading whitespace and a sign are accepted and trailing
// characters are ignored ("12px" is 12). Input without leading digits is 0.
func ParseInt(value string) int {
	n, ok := leadingInt(value)
	if !ok {
		return 0
	}
	return int(n)
}

// ParseRecordingID reads a recording identifier with the same rules as
// ParseInt but returns panel.UnspecifiedRecordingID when no number is found.
func ParseRecordingID(value string) int64 {
	n, ok := leadingInt(value)
	if !ok {
		return panel.UnspecifiedRecordingID
	}
	return n
}

func leadingInt(value string) (int64, bool) {
	s := strings.TrimLeftFunc(value, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Too many digits for int64; clamp instead of failing.
		n = math.MaxInt64
	}
	if negative {
		n = -n
	}
	return n, true
}
