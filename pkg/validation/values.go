package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
)

// DateLayout is the canonical string form of date values.
const DateLayout = "2006-01-02"

// StringValue returns the textual form used for pattern matching and
// dependency membership. Options contribute their Value, dates use
// DateLayout and absent values map to "".
func StringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case model.Option:
		return v.Value
	case *model.Option:
		if v == nil {
			return ""
		}
		return v.Value
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Present reports whether value carries something a pattern can be tested
// against. Whitespace counts as present.
func Present(value any) bool {
	return StringValue(value) != ""
}

// ValidDate reports whether value is a usable date.
func ValidDate(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return !v.IsZero()
	case *time.Time:
		return v != nil && !v.IsZero()
	default:
		return false
	}
}

// EmptyChoice reports whether a select/radio value counts as unanswered.
func EmptyChoice(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case model.Option:
		return v.IsZero()
	case *model.Option:
		return v == nil || v.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}
	return false
}

func blank(value any) bool {
	return strings.TrimSpace(StringValue(value)) == ""
}
