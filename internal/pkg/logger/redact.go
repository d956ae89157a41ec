package logger

import (
	"regexp"
	"strings"
)

var secretKeys = []string{"password", "secret", "token"}

// dsnCredentials matches the user:pass@ part of a URL-style DSN.
var dsnCredentials = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

func redactValue(key, val string) string {
	key = strings.ToLower(key)
	for _, k := range secretKeys {
		if strings.Contains(key, k) {
			return RedactSecret(val)
		}
	}
	return dsnCredentials.ReplaceAllString(val, "://$1:***@")
}

// RedactSecret masks a secret for safe logging. Empty input stays empty so
// "missing" and "set" remain distinguishable.
func RedactSecret(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
