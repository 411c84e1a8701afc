// Package phone handles international calling codes for employee phone
// numbers. Extraction from a stored string is a best-effort heuristic:
// prefixes like +1, +44 and +49 are only distinguishable by total length,
// never by a delimiter, so ambiguous inputs fall through to the generic rule.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

type CountryCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountryCodes backs the form's calling-code dropdown.
var CountryCodes = []CountryCode{
	{Code: "+1", Name: "USA/Canada"},
	{Code: "+44", Name: "UK"},
	{Code: "+91", Name: "India"},
	{Code: "+61", Name: "Australia"},
	{Code: "+49", Name: "Germany"},
	{Code: "+33", Name: "France"},
	{Code: "+81", Name: "Japan"},
	{Code: "+86", Name: "China"},
	{Code: "+7", Name: "Russia"},
	{Code: "+55", Name: "Brazil"},
	{Code: "+34", Name: "Spain"},
	{Code: "+39", Name: "Italy"},
	{Code: "+82", Name: "South Korea"},
	{Code: "+52", Name: "Mexico"},
	{Code: "+27", Name: "South Africa"},
	{Code: "+971", Name: "UAE"},
	{Code: "+65", Name: "Singapore"},
	{Code: "+31", Name: "Netherlands"},
	{Code: "+46", Name: "Sweden"},
	{Code: "+41", Name: "Switzerland"},
}

// IsKnownCode reports whether code appears in the dropdown table.
func IsKnownCode(code string) bool {
	for _, c := range CountryCodes {
		if c.Code == code {
			return true
		}
	}
	return false
}

// codePattern pairs a calling code with the total length of a full number
// carrying it. Length is the only disambiguator available.
type codePattern struct {
	code   string
	length int
}

var codePatterns = []codePattern{
	{"+1", 12},  // USA/Canada
	{"+44", 13}, // UK
	{"+91", 13}, // India
	{"+61", 12}, // Australia
	{"+49", 13}, // Germany
	{"+33", 12}, // France
	{"+81", 12}, // Japan
	{"+86", 13}, // China
	{"+7", 12},  // Russia
	{"+55", 13}, // Brazil
}

var genericCode = regexp.MustCompile(`^(\+\d{1,4})(\d+)$`)

// Extract splits a stored phone string into calling code and digit body.
// Order: known code/length pairs, then the first 1-4 digits after the plus
// sign, then a +1 default with the whole input as the body.
func Extract(phoneNumber string) (countryCode, number string) {
	if phoneNumber == "" {
		return "+1", ""
	}

	if strings.HasPrefix(phoneNumber, "+") {
		for _, p := range codePatterns {
			if strings.HasPrefix(phoneNumber, p.code) && len(phoneNumber) == p.length {
				return p.code, phoneNumber[len(p.code):]
			}
		}

		if m := genericCode.FindStringSubmatch(phoneNumber); m != nil {
			return m[1], m[2]
		}
	}

	return "+1", phoneNumber
}

// Format renders a phone number for display. US/Canada and UK numbers get
// their conventional grouping; everything else passes through.
func Format(phoneNumber string) string {
	if phoneNumber == "" {
		return ""
	}
	if !strings.HasPrefix(phoneNumber, "+") {
		return phoneNumber
	}

	digits := phoneNumber[1:]
	if strings.HasPrefix(phoneNumber, "+1") && len(digits) == 11 {
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	}
	if strings.HasPrefix(phoneNumber, "+44") && len(digits) == 12 {
		return fmt.Sprintf("+44 %s %s", digits[2:6], digits[6:])
	}
	return phoneNumber
}

// Hint returns the per-country input hint shown under the phone field.
func Hint(countryCode string) string {
	switch countryCode {
	case "+1":
		return "Format: 1234567890 (10 digits)"
	case "+44":
		return "Format: 7123456789 (10 digits)"
	case "+91":
		return "Format: 9876543210 (10 digits)"
	case "+61":
		return "Format: 412345678 (9 digits)"
	case "+49":
		return "Format: 15123456789 (11 digits)"
	default:
		return "Enter phone number without country code"
	}
}
