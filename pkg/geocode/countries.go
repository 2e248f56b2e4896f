package geocode

import "strings"

// countryCodes maps common free-text country names to ISO 3166-1 alpha-2.
var countryCodes = map[string]string{
	"USA":                      "US",
	"UNITED STATES":            "US",
	"UNITED STATES OF AMERICA": "US",
	"UK":                       "GB",
	"UNITED KINGDOM":           "GB",
	"GREAT BRITAIN":            "GB",
	"INDIA":                    "IN",
}

// NormalizeCountryCode reduces free-text country input to a 2-letter code.
// Unrecognized names longer than two characters fall back to their first two
// letters. That guess is wrong for many real countries ("Switzerland" is not
// "SW"); extend countryCodes rather than relying on it.
func NormalizeCountryCode(country string) string {
	c := strings.ToUpper(strings.TrimSpace(country))
	if c == "" {
		return ""
	}
	if code, ok := countryCodes[c]; ok {
		return code
	}
	r := []rune(c)
	if len(r) == 2 {
		return c
	}
	return string(r[:2])
}
