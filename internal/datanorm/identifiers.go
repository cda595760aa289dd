package datanorm

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"impactetl/internal/table"
)

const (
	participantPrefix = "P-"
	participantWidth  = 6
	programPrefix     = "PRG-"
	programWidth      = 3
)

// ParticipantID canonicalizes a participant identifier to P-###### using
// the digits it contains. Values without digits are Null.
//
//	"7"       -> "P-000007"
//	"ID-0042" -> "P-000042"
//	"abc"     -> Null
func ParticipantID(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null
	}
	digits := extractDigits(idText(v))
	if digits == "" {
		return table.Null
	}
	return table.String(participantPrefix + pad(digits, participantWidth))
}

// ProgramID canonicalizes a program identifier. Identifiers carrying
// digits become PRG-### from those digits; purely textual codes are
// upper-cased with whitespace runs collapsed to underscores.
//
//	"Program 3" -> "PRG-003"
//	"PRG1"      -> "PRG-001"
//	"stem nyc"  -> "STEM_NYC"
func ProgramID(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null
	}
	s := strings.ToUpper(strings.TrimSpace(idText(v)))
	if digits := extractDigits(s); digits != "" {
		return table.String(programPrefix + pad(digits, programWidth))
	}
	if s == "" {
		return table.Null
	}
	return table.String(strings.Join(strings.Fields(s), "_"))
}

// idText renders an identifier cell. Integral floats lose their ".0" so a
// numeric 7.0 is read as 7, not 70.
func idText(v table.Value) string {
	if f, ok := v.AsFloat(); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return v.String()
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// pad drops leading zeros from a digit run and left-pads it back to width.
// Runs longer than width are kept whole.
func pad(digits string, width int) string {
	d := strings.TrimLeftFunc(digits, func(r rune) bool { return r == '0' })
	if d == "" {
		d = "0"
	}
	if len(d) >= width {
		return d
	}
	return strings.Repeat("0", width-len(d)) + d
}

// isBlank reports whether s holds only whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
