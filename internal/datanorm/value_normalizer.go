package datanorm

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"impactetl/internal/table"
)

// cityAliases corrects known abbreviations after title-casing.
var cityAliases = map[string]string{
	"Nyc":           "New York",
	"New York City": "New York",
	"Bk":            "Brooklyn",
}

// City trims and title-cases a city name, then applies the alias table.
// Unknown names pass through title-cased; blank input is Null.
func City(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return table.Null
	}
	// cases.Caser keeps state, so each call gets its own.
	c := cases.Title(language.English).String(s)
	if alias, ok := cityAliases[c]; ok {
		return table.String(alias)
	}
	return table.String(c)
}

// dateLayouts are tried in order. Single-digit month/day verbs also accept
// zero-padded input, so "1/2/2006" covers "01/02/2006".
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Mon Jan 2 2006",
	"Mon, Jan 2, 2006",
	"20060102",
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// Excel stores dates as day counts since 1900. Numbers outside this window
// (before 1927 or after 9999) are not treated as serial dates.
const (
	minExcelSerial = 10000
	maxExcelSerial = 2958465
)

// Date parses a date written in any of the common layouts. Excel serial
// day numbers are accepted too. Anything unparseable is Null; Date never
// fails.
func Date(v table.Value) table.Value {
	switch v.Kind() {
	case table.KindNull:
		return table.Null
	case table.KindDate:
		return v
	case table.KindInt, table.KindFloat:
		f, _ := v.AsFloat()
		return excelSerial(f)
	}
	s := strings.Join(strings.Fields(v.String()), " ")
	if s == "" {
		return table.Null
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.Date(t)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "/-") {
		return excelSerial(f)
	}
	return table.Null
}

func excelSerial(f float64) table.Value {
	if f < minExcelSerial || f > maxExcelSerial || math.IsNaN(f) {
		return table.Null
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return table.Null
	}
	return table.Date(t)
}

// attendedTokens is the fixed truthy/falsy vocabulary for attendance flags,
// matched after trimming and lower-casing.
var attendedTokens = map[string]bool{
	"1":   true,
	"1.0": true,
	"yes": true,
	"y":   true,
	"0":   false,
	"0.0": false,
	"no":  false,
	"n":   false,
}

// Attended maps an attendance flag onto true/false. Values outside the
// vocabulary are Null, not false.
func Attended(v table.Value) table.Value {
	switch v.Kind() {
	case table.KindNull:
		return table.Null
	case table.KindBool:
		return v
	}
	if b, ok := attendedTokens[strings.ToLower(strings.TrimSpace(v.String()))]; ok {
		return table.Bool(b)
	}
	return table.Null
}

// Number coerces a cell to a float. Thousands separators are ignored;
// anything unparseable is Null.
func Number(v table.Value) table.Value {
	switch v.Kind() {
	case table.KindInt, table.KindFloat:
		f, _ := v.AsFloat()
		return table.Float(f)
	case table.KindString:
		s := strings.ReplaceAll(strings.TrimSpace(v.String()), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return table.Null
		}
		return table.Float(f)
	}
	return table.Null
}

// BoundedScore coerces a cell to a number and keeps it only inside
// [lo, hi]. Integral scores are stored as integers.
func BoundedScore(v table.Value, lo, hi float64) table.Value {
	n := Number(v)
	f, ok := n.AsFloat()
	if !ok || f < lo || f > hi {
		return table.Null
	}
	if f == math.Trunc(f) {
		return table.Int(int64(f))
	}
	return n
}

// Text keeps non-blank free text and turns whitespace-only cells into Null.
func Text(v table.Value) table.Value {
	if v.Kind() == table.KindString && isBlank(v.String()) {
		return table.Null
	}
	return v
}
