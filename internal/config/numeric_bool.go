package config

import (
	"math"
	"strconv"
	"strings"
)

// NumericBool is a flag stored as a number in the environment, e.g.
// HTTPS_MODE=1. Non-zero numbers are true; zero, empty and non-numeric
// values are false.
type NumericBool bool

// UnmarshalText implements encoding.TextUnmarshaler and is used by the env
// parser. It never fails.
func (b *NumericBool) UnmarshalText(text []byte) error {
	*b = NumericBool(parseNumericBool(string(text)))
	return nil
}

// String implements flag.Value.
func (b *NumericBool) String() string {
	if b != nil && *b {
		return "1"
	}
	return "0"
}

// Set implements flag.Value.
func (b *NumericBool) Set(s string) error {
	return b.UnmarshalText([]byte(s))
}

func parseNumericBool(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) {
		return false
	}

	return n != 0
}
