package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Digests produced elsewhere with the same values
// verify here, so they must not change without a migration.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16
)

// ErrMalformedDigest is returned by VerifyPassword when the stored digest is
// not of the form "<hex key>.<hex salt>".
var ErrMalformedDigest = errors.New("malformed password digest")

// HashPassword derives a salted scrypt digest of plain.
//
// The digest is the hex-encoded derived key and the hex-encoded salt joined by
// a dot. The salt's hex text, not its raw bytes, is fed to scrypt.
func HashPassword(plain string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(raw)

	key, err := scrypt.Key([]byte(plain), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

// VerifyPassword reports whether plain matches digest.
func VerifyPassword(plain, digest string) (bool, error) {
	keyHex, salt, ok := strings.Cut(digest, ".")
	if !ok || salt == "" {
		return false, ErrMalformedDigest
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) != scryptKeyLen {
		return false, ErrMalformedDigest
	}

	got, err := scrypt.Key([]byte(plain), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
