package common

import (
	"strings"
)

// WipeByteArray zeroes buf in place. Used for password buffers read from
// the terminal.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. ok is false when the scheme is missing or the token empty.
func BearerToken(header string) (token string, ok bool) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token = strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}
