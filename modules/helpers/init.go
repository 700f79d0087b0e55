package helpers

import (
	"strings"

	"github.com/goware/emailx"
	"github.com/kennygrant/sanitize"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PasswordCost is the bcrypt cost of new password hashes.
var PasswordCost = bcrypt.DefaultCost

func Truncate(s string, length int) string {
	var numRunes = 0
	for index := range s {
		numRunes++
		if numRunes > length {
			return s[:index]
		}
	}
	return s
}

// Lower folds s for case insensitive lookups.
func Lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Text strips markup from user input.
func Text(s string) string {
	return strings.TrimSpace(sanitize.HTML(s))
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return emailx.Normalize(email)
}

func IsEmail(s string) bool {
	return emailx.ValidateFast(s) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
