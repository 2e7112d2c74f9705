package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateOauthState produces the random state value round-tripped through
// a cookie to tie a Google callback to the browser that started the flow.
func GenerateOauthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
