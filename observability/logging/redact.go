package logging

import (
	"log/slog"
	"strings"
)

// RedactedValue replaces secret material in log output.
const RedactedValue = "[REDACTED]"

// Keys whose values never belong in a log line. The node identity key and
// anything keystore-shaped lives here; principal addresses are public and
// pass through.
var sensitiveKeys = map[string]struct{}{
	"key":         {},
	"nodekey":     {},
	"node_key":    {},
	"privatekey":  {},
	"private_key": {},
	"secret":      {},
	"token":       {},
	"passphrase":  {},
	"mnemonic":    {},
}

// IsSensitive reports whether values logged under key must be redacted.
// Matching is case-insensitive.
func IsSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// MaskAttr redacts the attribute value when its key names secret material.
// Empty values pass through unchanged to keep logs free of placeholder noise.
func MaskAttr(attr slog.Attr) slog.Attr {
	if !IsSensitive(attr.Key) {
		return attr
	}
	if strings.TrimSpace(attr.Value.String()) == "" {
		return attr
	}
	return slog.String(attr.Key, RedactedValue)
}
