package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL returns the gravatar URL for an email at the given pixel size,
// falling back to the "mystery person" default image.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=mp", hex.EncodeToString(sum[:]), size)
}

// MiniGravatarURL returns a small gravatar suitable for list rows.
func MiniGravatarURL(email string) string {
	return GravatarURL(email, 60)
}
