package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goware/emailx"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Errors maps a form field (by its json name) to the first rule it failed.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	list := make([]string, len(fields))
	for n, field := range fields {
		list[n] = field + ": " + e[field]
	}
	return "invalid form: " + strings.Join(list, "; ")
}

// Engine returns the shared validator with the custom rules registered.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		rules := map[string]validator.Func{
			"hasupper":     contains(isUpper),
			"hasdigit":     contains(isDigit),
			"hassymbol":    contains(isSymbol),
			"filled":       filled,
			"emailx":       email,
			"allowedimage": allowedImage,
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(err)
			}
		}
		instance = v
	})
	return instance
}

// Struct runs the form rules. A failure is returned as Errors.
func Struct(form interface{}) error {
	err := Engine().Struct(form)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	errs := Errors{}
	for _, fe := range invalid {
		if _, exists := errs[fe.Field()]; exists {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	if m, exists := messages[fe.Namespace()+"."+fe.Tag()]; exists {
		return m
	}
	if m, exists := messages[fe.Field()+"."+fe.Tag()]; exists {
		return m
	}
	switch fe.Tag() {
	case "required", "filled":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "emailx":
		return "Invalid email"
	case "allowedimage":
		return "Unsupported file format"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

var messages = map[string]string{
	"email.required":            "Email is required",
	"password.required":         "Password is required",
	"password.min":              "Password must be at least 6 characters",
	"password.hasupper":         "Password must contain at least one uppercase letter",
	"password.hasdigit":         "Password must contain at least one number",
	"password.hassymbol":        "Password must contain at least one special character",
	"confirmPassword.required":  "Confirm Password is required",
	"confirmPassword.eqfield":   "Passwords must match",
	"username.required":         "Username is required",
	"Profile.username.required": "Enter a username",
	"title.required":            "Title is required",
	"title.max":                 "Title must be less than 50 characters",
	"description.max":           "Description must be less than 500 characters",
	"image.required":            "Image is required",
	"comment.filled":            "Comment is required",
}

func email(fl validator.FieldLevel) bool {
	return emailx.ValidateFast(fl.Field().String()) == nil
}

func filled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func allowedImage(fl validator.FieldLevel) bool {
	return IsAllowedImage(fl.Field().String())
}
