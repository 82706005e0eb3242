package etl

// normalize.go canonicalizes raw field values from the flat export.
//
// All functions here are stateless and total: bad input falls back to a
// default (or reports "no result" via a bool), never an error. The export
// carries the usual spreadsheet mess: inconsistent unit spellings, mixed-case
// location codes, free-text vendor strings, currency symbols in money fields.

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// unitVariants maps known unit-of-measure spellings to one canonical form.
// Unmapped values pass through lower-cased.
var unitVariants = map[string]string{
	"12 ounce can": "12 oz can",
	"12-oz can":    "12 oz can",
	"36 oz can":    "36 oz can",
	"bunch":        "bunch",
	"dozen":        "dozen",
}

// cityStateZip matches "City, ST 12345" with an optional comma after the city.
var cityStateZip = regexp.MustCompile(`^([^,]+),?\s+([A-Z]{2})\s+(\d{5})`)

// sourceDateLayout is the export's date format (MM/DD/YYYY, zero-padding
// optional).
const sourceDateLayout = "1/2/2006"

// NormalizeUnit canonicalizes a unit-of-measure value.
// Empty input defaults to "each".
func NormalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return "each"
	}
	if canonical, ok := unitVariants[u]; ok {
		return canonical
	}
	return u
}

// NormalizeLocation canonicalizes a storage location code.
// Empty input defaults to "GENERAL".
func NormalizeLocation(raw string) string {
	loc := strings.ToUpper(strings.TrimSpace(raw))
	if loc == "" {
		return "GENERAL"
	}
	return loc
}

// ParseVendor splits a composite vendor string of the form
// "Name, Address, City, ST 12345" into its components.
//
// Segment 0 is the vendor name, segment 1 the street address. The remaining
// segments are rejoined and matched against the city/state/zip pattern; when
// the pattern does not match, those three fields stay empty rather than
// guessing. A blank input yields no result, which callers must treat as
// "skip vendor and purchase processing for this row".
func ParseVendor(raw string) (VendorFields, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return VendorFields{}, false
	}

	parts := strings.Split(raw, ", ")
	vf := VendorFields{Name: "Unknown Vendor"}
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		vf.Name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		vf.Address = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		// The city itself may contain a comma split, so rejoin the tail
		// before matching.
		location := strings.TrimSpace(strings.Join(parts[2:], ", "))
		if m := cityStateZip.FindStringSubmatch(location); m != nil {
			vf.City = strings.TrimSpace(m[1])
			vf.State = m[2]
			vf.Zip = m[3]
		}
	}
	return vf, true
}

// ParseDate parses a source date (MM/DD/YYYY). Unparsable or missing input
// yields no result; callers log a warning and carry a null date.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(sourceDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseMoney parses a cost or price value, tolerating currency symbols and
// thousands separators.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
