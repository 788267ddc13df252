package form

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldValidation holds runtime validation rules for a text field. Values are
// trimmed before they are checked.
type FieldValidation struct {
	Required  bool
	MaxLength int
	Pattern   *regexp.Regexp
	Hint      string // shown instead of the raw pattern when Pattern fails
}

// ValidateText checks a text value against the validation rules.
func (v FieldValidation) ValidateText(value string) string {
	value = strings.TrimSpace(value)
	if v.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	if v.MaxLength > 0 && len(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		if v.Hint != "" {
			return v.Hint
		}
		return fmt.Sprintf("must match pattern: %s", v.Pattern.String())
	}
	return ""
}

// HTTPURL requires an http:// or https:// prefix.
var HTTPURL = FieldValidation{
	Required: true,
	Pattern:  regexp.MustCompile(`^https?://[^\s/]+`),
	Hint:     "must start with http:// or https://",
}
