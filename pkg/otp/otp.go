package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Length is the number of digits in a code.
const Length = 6

var upperBound = big.NewInt(1_000_000)

// Generate returns a uniformly random zero-padded six digit code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, upperBound)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Hash returns the bcrypt hash stored in place of the code.
func Hash(code string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return string(b), nil
}

// Matches compares a submitted code against a stored hash.
func Matches(hash, code string) bool {
	code = strings.TrimSpace(code)
	if hash == "" || len(code) != Length {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
