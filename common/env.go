// Package common holds the small environment helpers shared by the command
// and the configuration loader. Every knob is read as a string and coerced
// here, so callers never see a parse error, only their fallback.
package common

import (
	"os"
	"strconv"
	"time"
)

// GetEnv reads an environment variable, treating unset and empty the same.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// ParseInt coerces an integer knob, keeping the fallback on malformed input.
func ParseInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// ParseDuration coerces a duration knob, keeping the fallback on malformed
// input.
func ParseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
