// Package misc holds small shared helpers with no domain knowledge.
package misc

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetDuration reads key as either a bare number of seconds or a
// time.ParseDuration string. Non-positive values collapse to zero so
// callers can distinguish "unset" from "explicitly disabled".
func GetDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n <= 0 {
			return 0
		}
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		if d <= 0 {
			return 0
		}
		return d
	}
	return def
}

func GetBool(key string, def bool) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y":
		return true
	case "0", "false", "f", "no", "n":
		return false
	default:
		return def
	}
}

// GetStrings reads key as a comma-separated list, trimming whitespace
// and dropping empty items.
func GetStrings(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return SplitList(v)
}

// SplitList splits a comma-separated list, trimming whitespace and
// dropping empty items. A blank input yields nil.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
