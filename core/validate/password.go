package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Symbols accepted as the special character of a password.
const Symbols = `!@#$%^&*(),.?":{}|<>`

// PasswordMinLength is the shortest password accepted.
const PasswordMinLength = 6

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSymbol(r rune) bool {
	return strings.ContainsRune(Symbols, r)
}

func contains(class func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), class) >= 0
	}
}

// PasswordProblems lists every composition rule the password breaks, in
// the order they are checked by the forms.
func PasswordProblems(password string) []string {
	if password == "" {
		return []string{messages["password.required"]}
	}
	var problems []string
	if len([]rune(password)) < PasswordMinLength {
		problems = append(problems, messages["password.min"])
	}
	if strings.IndexFunc(password, isUpper) < 0 {
		problems = append(problems, messages["password.hasupper"])
	}
	if strings.IndexFunc(password, isDigit) < 0 {
		problems = append(problems, messages["password.hasdigit"])
	}
	if strings.IndexFunc(password, isSymbol) < 0 {
		problems = append(problems, messages["password.hassymbol"])
	}
	return problems
}
