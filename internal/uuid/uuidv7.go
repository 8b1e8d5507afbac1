// Package uuid generates and validates the record identifiers handed out by
// the API. Identifiers are UUIDv7 strings: time-ordered, so they index well as
// primary keys, and opaque to clients.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string.
// If the random source fails it falls back to a random UUIDv4.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse validates s and returns its canonical lower-case form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
