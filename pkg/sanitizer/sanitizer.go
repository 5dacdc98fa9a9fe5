package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	rePlateChars = regexp.MustCompile(`[^0-9A-Z]+`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func collapseWhitespace(s string) string {
	return reWhitespace.ReplaceAllString(s, " ")
}

// NormalizePlate canonicalizes a vehicle plate so the one-active-reservation
// per-vehicle rule cannot be dodged with spacing or case: "ka-01 ab 1234"
// and "KA01AB1234" normalize to the same value.
func NormalizePlate(input string) string {
	p := Pipeline{
		trimSpace,
		strings.ToUpper,
		func(s string) string { return rePlateChars.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

// SanitizeLabel cleans a display string (station name, location, rider name)
// without destroying its casing.
func SanitizeLabel(input string) string {
	p := Pipeline{
		trimSpace,
		collapseWhitespace,
	}
	return p.Apply(input)
}
