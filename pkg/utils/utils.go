package utils

import (
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

// CameroonDialCode is prefixed to national mobile numbers.
const CameroonDialCode = "237"

// ErrInvalidMSISDN is returned when a phone number cannot be read as a Cameroon mobile number.
var ErrInvalidMSISDN = errors.New("invalid mobile number")

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// NormalizeMSISDN turns a Cameroon phone number into the international
// digits-only form the mobile-money APIs expect (237XXXXXXXXX).
// Spaces, dashes, dots, a leading "+" or "00" are accepted.
func NormalizeMSISDN(phone string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", ErrInvalidMSISDN
		}
	}
	digits := strings.TrimPrefix(b.String(), "00")
	if len(digits) == 9 {
		digits = CameroonDialCode + digits
	}
	if len(digits) != 12 || !strings.HasPrefix(digits, CameroonDialCode) {
		return "", ErrInvalidMSISDN
	}
	// national numbers are 9 digits starting with 6 (mobile) or 2 (fixed)
	if c := digits[3]; c != '6' && c != '2' {
		return "", ErrInvalidMSISDN
	}
	return digits, nil
}

// MaskPhone hides all but the last three digits of a phone number for logs.
func MaskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
