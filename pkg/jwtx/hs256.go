package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const algHS256 = "HS256"

// MinSecretBytes rejects secrets that are trivially brute-forceable.
const MinSecretBytes = 32

var ErrWeakSecret = errors.New("jwtx: secret must be at least 32 bytes")

type hs256Signer struct {
	secret []byte
}

func newHS256Signer(secret []byte) (*hs256Signer, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	return &hs256Signer{secret: secret}, nil
}

func (s *hs256Signer) Alg() string { return algHS256 }

func (s *hs256Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

type hs256Verifier struct {
	secret []byte
	issuer string
}

func newHS256Verifier(secret []byte, issuer string) (*hs256Verifier, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	return &hs256Verifier{secret: secret, issuer: issuer}, nil
}

func (v *hs256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != algHS256 {
			return nil, ErrAlgMismatch
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{algHS256}))
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}

// mapParseError maps golang-jwt errors onto our sentinels so callers can use
// errors.Is without importing the jwt module.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return ErrInvalidClaim
	}
}
