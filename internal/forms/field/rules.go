// internal/forms/field/rules.go
package field

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ssnPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// SSN validates the XXX-XX-XXXX social security number format; dashes optional.
func SSN() validation.Rule {
	return validation.Match(ssnPattern).Error("SSN must be in format XXX-XX-XXXX")
}

// Zip validates a 5-digit ZIP with optional plus-four.
func Zip() validation.Rule {
	return validation.Match(zipPattern).Error("invalid ZIP code")
}

// Phone requires at least 10 digits, ignoring separators.
func Phone() validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil // requiredness is a separate rule
		}
		digits := 0
		for _, r := range s {
			switch {
			case unicode.IsDigit(r):
				digits++
			case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+':
			default:
				return fmt.Errorf("phone number contains invalid characters")
			}
		}
		if digits < 10 {
			return fmt.Errorf("phone number must be at least 10 digits")
		}
		return nil
	})
}

// ISODate validates a YYYY-MM-DD date string.
func ISODate() validation.Rule {
	return validation.Date("2006-01-02").Error("date must be YYYY-MM-DD")
}

// Email wraps the standard email format check.
func Email() validation.Rule {
	return is.Email.Error("invalid email address")
}

// Currency requires a non-negative dollar amount.
func Currency() validation.Rule {
	return validation.Min(0.0).Error("amount must be 0 or more")
}

// MinAmount requires an amount of at least min dollars.
func MinAmount(min float64) validation.Rule {
	return validation.Min(min).Error(fmt.Sprintf("must be $%.0f or more", min))
}

// OneOf restricts a string-kinded value to a closed set.
func OneOf[T ~string](values []T) validation.Rule {
	allowed := make([]interface{}, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		allowed[i] = v
		labels[i] = string(v)
	}
	return validation.In(allowed...).Error("must be one of: " + strings.Join(labels, ", "))
}

// SubsetOf validates that every element of a string-kinded slice is in the
// closed set. Used for multi-selects like felony types and member programs.
func SubsetOf[T ~string](values []T) validation.Rule {
	allowed := make(map[string]bool, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		allowed[string(v)] = true
		labels[i] = string(v)
	}
	return validation.By(func(value interface{}) error {
		switch vs := value.(type) {
		case []string:
			for _, v := range vs {
				if !allowed[v] {
					return fmt.Errorf("%q is not one of: %s", v, strings.Join(labels, ", "))
				}
			}
			return nil
		case []T:
			for _, v := range vs {
				if !allowed[string(v)] {
					return fmt.Errorf("%q is not one of: %s", string(v), strings.Join(labels, ", "))
				}
			}
			return nil
		case nil:
			return nil
		default:
			return fmt.Errorf("expected a list of selections")
		}
	})
}

// NormalizeSSN reduces input to digits and reformats as XXX-XX-XXXX once nine
// digits are present. Shorter input is returned partially formatted, the way
// the entry field formats as the user types.
func NormalizeSSN(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) > 9 {
		cleaned = cleaned[:9]
	}
	switch {
	case len(cleaned) <= 3:
		return cleaned
	case len(cleaned) <= 5:
		return cleaned[:3] + "-" + cleaned[3:]
	default:
		return cleaned[:3] + "-" + cleaned[3:5] + "-" + cleaned[5:]
	}
}
