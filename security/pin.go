package security

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidatePinFormat enforces the 4-digit keypad format before hashing.
func ValidatePinFormat(pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("PIN must be exactly 4 digits")
	}
	return nil
}

// HashPin hashes a keypad PIN. Every PIN class (employee, manager, admin)
// is stored hashed; uniqueness checks happen before this point.
func HashPin(pin string) (string, error) {
	if err := ValidatePinFormat(pin); err != nil {
		return "", err
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(digest), nil
}

// VerifyPin compares a punched PIN against a stored hash.
func VerifyPin(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
