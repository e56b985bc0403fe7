// Package validator accumulates field-level validation failures.
package validator

import (
	"regexp"
	"strings"
)

// IsbnRX matches an ISBN-10 or ISBN-13 written as digits only.
var IsbnRX = regexp.MustCompile(`^([0-9]{10}|[0-9]{13})$`)

// Validator holds field names mapped to the first failure recorded for them.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a key.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}
