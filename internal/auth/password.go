package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8

	// bcrypt truncates beyond 72 bytes
	maxPasswordLength = 72
)

var (
	ErrPasswordTooShort = fmt.Errorf("the password must be at least %d characters long", minPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("the password must not be longer than %d characters", maxPasswordLength)
	ErrCredentialsWrong = errors.New("the email or password is incorrect")
)

// HashPassword validates the password and returns its bcrypt hash.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword compares a plain text password against a stored hash.
func CheckPassword(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrCredentialsWrong
	}

	return nil
}
