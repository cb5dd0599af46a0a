package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL derives the Gravatar image URL for an email address. Rating is
// capped at pg and missing avatars fall back to the mystery-man image.
func URL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=pg&d=mm", hex.EncodeToString(sum[:]), size)
}
