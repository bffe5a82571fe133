package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for password hashing.
const HashCost = 10

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// pepperedDigest folds the pepper into the password via HMAC-SHA256 and
// base64-encodes the result. bcrypt rejects inputs over 72 bytes, so the
// password is compressed to a fixed 43-byte digest before hashing and
// passphrases of any length stay valid input.
func pepperedDigest(password string) []byte {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum)
	return out
}

// HashPassword derives a salted bcrypt hash of the peppered password. The
// salt is generated by bcrypt and embedded in the returned encoded hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(pepperedDigest(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// The comparison is constant-time within bcrypt itself.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), pepperedDigest(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
