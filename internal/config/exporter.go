// Package config loads the exporter configuration with ENV > CLI >
// defaults precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIHost       = "https://api.datadoghq.com/api/v1"
	defaultFlushInterval = 10
	defaultPollInterval  = 2
)

// ExporterConfig is the consumed configuration surface of the metrics
// pipeline. The core never re-derives any of it.
type ExporterConfig struct {
	APIHost       string
	APIKey        string
	Tags          []string
	Gzip          bool
	WriteToStdout bool
	WriteToAPI    bool
	FlushInterval time.Duration
	PollInterval  time.Duration
}

// LoadExporterConfig parses CLI args and merges them with environment
// variables (ENV wins) and defaults.
func LoadExporterConfig(args []string, out io.Writer) (ExporterConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		hostOpt   string
		keyOpt    string
		tagsOpt   string
		flushOpt  int
		pollOpt   int
		gzipOpt   bool
		stdoutOpt bool
		apiOpt    bool
	)

	fs.StringVar(&hostOpt, "a", "", fmt.Sprintf("API host URL, default: %s", defaultAPIHost))
	fs.StringVar(&keyOpt, "k", "", "API key sent in the DD-API-KEY header")
	fs.StringVar(&tagsOpt, "t", "", "static tags attached to every series (comma-separated key:value)")
	fs.IntVar(&flushOpt, "i", 0, fmt.Sprintf("flush interval in seconds, default: %d", defaultFlushInterval))
	fs.IntVar(&pollOpt, "p", 0, fmt.Sprintf("system poll interval in seconds, default: %d", defaultPollInterval))
	fs.BoolVar(&gzipOpt, "g", true, "gzip payloads before sending")
	fs.BoolVar(&stdoutOpt, "o", false, "mirror every exported series-point to stdout as JSON lines")
	fs.BoolVar(&apiOpt, "w", true, "export series to the API")

	if err := fs.Parse(args); err != nil {
		return ExporterConfig{}, err
	}

	host := normalizeHostURL(FromEnvOrFlag("API_HOST", hostOpt, defaultAPIHost))
	if _, err := url.ParseRequestURI(host); err != nil {
		return ExporterConfig{}, fmt.Errorf("invalid API host: %q", host)
	}

	cfg := ExporterConfig{
		APIHost:       host,
		APIKey:        FromEnvOrFlag("API_KEY", keyOpt, ""),
		Tags:          FromEnvOrFlagStrings("TAGS", tagsOpt),
		Gzip:          FromEnvOrFlagBool("GZIP", gzipOpt),
		WriteToStdout: FromEnvOrFlagBool("STDOUT", stdoutOpt),
		WriteToAPI:    FromEnvOrFlagBool("WRITE_API", apiOpt),
		FlushInterval: FromEnvOrFlagDuration("FLUSH_INTERVAL", flushOpt, defaultFlushInterval),
		PollInterval:  FromEnvOrFlagDuration("POLL_INTERVAL", pollOpt, defaultPollInterval),
	}

	if cfg.FlushInterval <= 0 {
		return ExporterConfig{}, fmt.Errorf("flush interval must be > 0, got %v", cfg.FlushInterval)
	}
	if cfg.PollInterval <= 0 {
		return ExporterConfig{}, fmt.Errorf("poll interval must be > 0, got %v", cfg.PollInterval)
	}
	if cfg.WriteToAPI && cfg.APIKey == "" {
		return ExporterConfig{}, fmt.Errorf("API export enabled but no API key configured")
	}
	return cfg, nil
}

func normalizeHostURL(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return defaultAPIHost
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}
