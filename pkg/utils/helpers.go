package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

func Marshal(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func StrToInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// remove only space symbols
func RemoveSpaceSymbol(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// DigitsOnly reports whether s is non-empty and consists purely of ASCII digits.
func DigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
