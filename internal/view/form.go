package view

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldError is one failed stock-form rule with its user-facing message.
type FieldError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidateStock applies the stock form's rules to the raw input. The
// minimum and pattern rules overlap on negative input on purpose; both
// messages stay independently reachable.
func ValidateStock(raw string) (int, []FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, []FieldError{{Rule: "required", Message: "Stock is required"}}
	}

	var errs []FieldError
	if n, err := strconv.Atoi(trimmed); err == nil && n < 0 {
		errs = append(errs, FieldError{Rule: "min", Message: "Stock must be at least 0"})
	}
	if !digitsOnly.MatchString(trimmed) {
		errs = append(errs, FieldError{Rule: "pattern", Message: "Stock must be a whole number"})
	}
	if len(errs) > 0 {
		return 0, errs
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		// digits only but out of int range
		return 0, []FieldError{{Rule: "pattern", Message: "Stock must be a whole number"}}
	}
	return n, nil
}
