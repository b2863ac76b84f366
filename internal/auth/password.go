// Package auth holds password hashing, password policy and session token handling.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

var (
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

// ErrWeakPassword is matched by every PolicyError.
var ErrWeakPassword = errors.New("password does not meet policy")

// PolicyError lists the rules a password failed.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string {
	return "password must " + strings.Join(e.Violations, ", ")
}

func (e *PolicyError) Is(target error) bool { return target == ErrWeakPassword }

// CheckPassword returns a *PolicyError when password breaks any rule.
func CheckPassword(password string) error {
	var violations []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		violations = append(violations, fmt.Sprintf("be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		violations = append(violations, fmt.Sprintf("be at most %d bytes", MaxPasswordBytes))
	}
	if !hasLower.MatchString(password) {
		violations = append(violations, "contain a lowercase letter")
	}
	if !hasUpper.MatchString(password) {
		violations = append(violations, "contain an uppercase letter")
	}
	if !hasDigit.MatchString(password) {
		violations = append(violations, "contain a digit")
	}
	if !hasSpecial.MatchString(password) {
		violations = append(violations, "contain a special character")
	}
	if len(violations) > 0 {
		return &PolicyError{Violations: violations}
	}
	return nil
}

// HashPassword hashes with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches hash.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
