package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"filings/widget"
)

var (
	validate       = validator.New()
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// coerce checks v against def and returns it in its stored form. Empty
// strings always pass: required fields are only enforced on submit.
func coerce(def FieldDef, v any) (any, error) {
	nv, err := normalize(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, def.Name)
	}
	bad := func(why string) error {
		return fmt.Errorf("%w: %s %s", ErrInvalidValue, def.Name, why)
	}

	switch def.Kind {
	case KindCheckbox:
		b, ok := nv.(bool)
		if !ok {
			return nil, bad("must be true or false")
		}
		return b, nil
	case KindMultiSelect:
		list, ok := nv.([]string)
		if !ok {
			return nil, bad("must be a list")
		}
		for _, item := range list {
			if !widget.HasValue(def.Options, item) {
				return nil, bad(fmt.Sprintf("has unknown option %q", item))
			}
		}
		return list, nil
	case KindFile:
		ref, ok := nv.(FileRef)
		if !ok {
			if s, isStr := nv.(string); isStr && s == "" {
				return EmptyFile(), nil
			}
			return nil, bad("must be a file reference")
		}
		return ref, nil
	}

	s, ok := nv.(string)
	if !ok {
		return nil, bad("must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	switch def.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || n < 0 {
			return nil, bad("must be a non-negative number")
		}
	case KindEmail:
		if err := validate.Var(s, "email"); err != nil {
			return nil, bad("must be a valid email")
		}
	case KindPhone:
		if !phonePattern.MatchString(s) {
			return nil, bad("must be a 10 digit mobile number")
		}
	case KindPAN:
		s = strings.ToUpper(s)
		if !panPattern.MatchString(s) {
			return nil, bad("must be a valid PAN")
		}
	case KindAadhaar:
		if !aadhaarPattern.MatchString(s) {
			return nil, bad("must be 12 digits")
		}
	case KindSelect, KindYesNo:
		if len(def.Options) > 0 && !widget.HasValue(def.Options, s) {
			return nil, bad(fmt.Sprintf("has unknown option %q", s))
		}
	}
	return s, nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []string:
		return len(t) == 0
	case FileRef:
		return t.IsEmpty()
	}
	return false
}

func parseAmount(s string) float64 {
	n, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n
}
