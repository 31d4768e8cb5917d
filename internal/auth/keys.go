package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// KeyPrefix marks keys issued by this service.
	KeyPrefix = "lib_"

	// lookupPrefixLength is how much of a key is stored in clear for lookup.
	lookupPrefixLength = len(KeyPrefix) + 8

	keyRandomBytes = 24
)

var ErrKeyMismatch = errors.New("api key does not match")

// GenerateKey creates a random key in the form lib_<48 hex chars>.
func GenerateKey() (string, error) {
	bytes := make([]byte, keyRandomBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return KeyPrefix + hex.EncodeToString(bytes), nil
}

// LookupPrefix returns the non-secret part of key used to find its record.
// Keys too short to carry a prefix return "".
func LookupPrefix(key string) string {
	if len(key) <= lookupPrefixLength {
		return ""
	}
	return key[:lookupPrefixLength]
}

// HashKey creates a bcrypt hash of the key.
func HashKey(key string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckKey compares a key with its hash.
func CheckKey(key, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrKeyMismatch
		}
		return err
	}
	return nil
}
