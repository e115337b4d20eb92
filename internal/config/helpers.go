package config

import (
	"os"
	"strings"
	"time"

	"github.com/vshulcz/Telemetra/internal/misc"
)

// FromEnvOrFlag returns the environment value when present, otherwise
// the CLI flag value, otherwise the default.
func FromEnvOrFlag(envKey, flagVal, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if v := strings.TrimSpace(flagVal); v != "" {
		return v
	}
	return def
}

// FromEnvOrFlagBool resolves a boolean with ENV taking precedence over
// the flag value.
func FromEnvOrFlagBool(envKey string, flagVal bool) bool {
	if strings.TrimSpace(os.Getenv(envKey)) != "" {
		return misc.GetBool(envKey, flagVal)
	}
	return flagVal
}

// FromEnvOrFlagDuration reads a duration (bare seconds or Go syntax)
// from ENV, falling back to a flag given in seconds, then the default.
func FromEnvOrFlagDuration(envKey string, flagSeconds, defSeconds int) time.Duration {
	if strings.TrimSpace(os.Getenv(envKey)) != "" {
		return misc.GetDuration(envKey, time.Duration(defSeconds)*time.Second)
	}
	if flagSeconds > 0 {
		return time.Duration(flagSeconds) * time.Second
	}
	return time.Duration(defSeconds) * time.Second
}

// FromEnvOrFlagStrings resolves a comma-separated list the same way.
func FromEnvOrFlagStrings(envKey, flagVal string) []string {
	if strings.TrimSpace(os.Getenv(envKey)) != "" {
		return misc.GetStrings(envKey, nil)
	}
	return misc.SplitList(flagVal)
}
