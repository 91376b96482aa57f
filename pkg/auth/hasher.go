package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"strings"
)

const saltSize = 64

// Hasher produces salted one-way password hashes. Each call to Hash draws a
// fresh random HMAC-SHA512 key, so hashing the same password twice yields
// different outputs. The stored format is base64(salt):base64(hash).
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	digest := mac.Sum(nil)

	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(digest), nil
}

// Verify recomputes the keyed hash and compares it in constant time. A
// malformed stored value (wrong part count, broken base64) is an expected
// input and reports false rather than an error.
func (h *Hasher) Verify(password, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	digest, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))

	return hmac.Equal(mac.Sum(nil), digest)
}
