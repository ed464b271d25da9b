package id

import "crypto/rand"

// GenerateID creates a short 12-character alphanumeric ID.
// Used for answer options, where a full UUID would bloat session
// snapshots without buying anything.
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
