// Package secrets encrypts sensitive setting values (the market-data API
// token) at rest using fernet. The key comes from the FERNET_KEY environment
// variable; when unset, values are stored in plain text so local development
// works without ceremony.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Codec encrypts and decrypts setting values. A Codec with no key passes
// values through unchanged.
type Codec struct {
	key *fernet.Key
}

// NewCodec parses a base64 fernet key. An empty key string yields a
// pass-through codec.
func NewCodec(key string) (*Codec, error) {
	if key == "" {
		return &Codec{}, nil
	}
	parsed, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Codec{key: parsed}, nil
}

// Encrypt seals a value for storage.
func (c *Codec) Encrypt(value string) (string, error) {
	if c.key == nil {
		return value, nil
	}
	token, err := fernet.EncryptAndSign([]byte(value), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt opens a stored value. Decryption failures (wrong key, corrupted
// token) return an error rather than garbage.
func (c *Codec) Decrypt(stored string) (string, error) {
	if c.key == nil {
		return stored, nil
	}
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{c.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt stored value")
	}
	return string(plain), nil
}
