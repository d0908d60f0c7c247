package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MinKeyBytes is the smallest acceptable signing key. HS256 requires a
// 256-bit key.
const MinKeyBytes = 32

var (
	ErrSecretMissing  = errors.New("jwtx: signing secret is not set")
	ErrSecretEncoding = errors.New("jwtx: signing secret must be Base64 or Base64URL encoded")
)

// LoadSigningKey decodes the configured secret into symmetric key material.
// Standard Base64 is tried first, then Base64URL. The key is loaded once at
// startup and any failure here must abort the process: a server running with
// a missing or weak key would silently issue and accept unverifiable tokens.
func LoadSigningKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretMissing
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		key, err = base64.URLEncoding.DecodeString(secret)
		if err != nil {
			return nil, ErrSecretEncoding
		}
	}

	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf(
			"jwtx: signing key decodes to %d bytes, need at least %d",
			len(key), MinKeyBytes,
		)
	}

	return key, nil
}
