package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integer settings. Unparseable values fall back.
func GetenvInt(key string, fallback int) int {
	value := Getenv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// GetenvBool accepts anything strconv.ParseBool understands.
func GetenvBool(key string, fallback bool) bool {
	value := Getenv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// GetenvDuration parses values such as "72h" or "15m".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := Getenv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetenvList splits a comma separated variable, dropping empty elements.
func GetenvList(key string, fallback []string) []string {
	value := Getenv(key, "")
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
