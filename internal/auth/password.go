// Package auth provides password hashing, token issuance and the
// request identity carried through handlers.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor used for stored passwords.
const PasswordCost = 10

// HashPassword creates a bcrypt hash of the given password.
// The salt is generated per call and embedded in the result.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks if the password matches the hash.
// A mismatch returns false with a nil error; a malformed hash returns an error.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}

// dummyHash is compared against when the account does not exist so that
// unknown emails cost about as much as wrong passwords.
var dummyHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("mesto-dummy-password"), PasswordCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// BurnPasswordCheck runs a comparison against a fixed hash and discards the result.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
