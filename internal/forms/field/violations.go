// internal/forms/field/violations.go
package field

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Violation is a single field-level validation failure: a field path like
// "members[1].name.first" and a human-readable message.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Violations is the complete list of failures for one draft. Validation never
// stops at the first failure, so callers can display every error at once.
type Violations []Violation

// OK reports whether the draft passed.
func (v Violations) OK() bool {
	return len(v) == 0
}

// Add appends a violation.
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// AddCode appends a violation with an error code.
func (v *Violations) AddCode(field, message, code string) {
	*v = append(*v, Violation{Field: field, Message: message, Code: code})
}

// Merge appends all of other's violations.
func (v *Violations) Merge(other Violations) {
	*v = append(*v, other...)
}

// Has reports whether any violation targets the given field path exactly.
func (v Violations) Has(field string) bool {
	for _, viol := range v {
		if viol.Field == field {
			return true
		}
	}
	return false
}

// ForField returns every violation on a field path or its children.
func (v Violations) ForField(field string) Violations {
	var out Violations
	for _, viol := range v {
		if viol.Field == field || strings.HasPrefix(viol.Field, field+".") || strings.HasPrefix(viol.Field, field+"[") {
			out = append(out, viol)
		}
	}
	return out
}

// Messages returns "path: message" lines, sorted by path for stable output.
func (v Violations) Messages() []string {
	out := make([]string, len(v))
	for i, viol := range v {
		out[i] = fmt.Sprintf("%s: %s", viol.Field, viol.Message)
	}
	sort.Strings(out)
	return out
}

// String joins all messages; used when a whole violation list lands in a log line.
func (v Violations) String() string {
	return strings.Join(v.Messages(), "; ")
}

// FromValidationErrors flattens a (possibly nested) ozzo error into field-path
// violations. Map keys from nested structs become dotted segments; numeric
// keys from slices become [n] indexes.
func FromValidationErrors(prefix string, err error) Violations {
	var out Violations
	flatten(prefix, err, &out)
	return out
}

func flatten(prefix string, err error, out *Violations) {
	if err == nil {
		return
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		field := prefix
		if field == "" {
			field = "(root)"
		}
		out.Add(field, err.Error())
		return
	}
	for key, sub := range errs {
		flatten(joinPath(prefix, key), sub, out)
	}
}

func joinPath(prefix, key string) string {
	if _, err := strconv.Atoi(key); err == nil {
		// slice element
		return fmt.Sprintf("%s[%s]", prefix, key)
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
