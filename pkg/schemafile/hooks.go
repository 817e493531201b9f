package schemafile

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	optionType = reflect.TypeOf(model.Option{})
	timeType   = reflect.TypeOf(time.Time{})
)

// dateLayouts are tried in order for minDate/maxDate values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

func decodeHooks(now func() time.Time) mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		scalarOptionHook,
		dateHook(now),
		scalarStringHook,
	)
}

// scalarOptionHook lets options be listed as plain values ("Yes") next to
// {value, label} objects.
func scalarOptionHook(from, to reflect.Type, data any) (any, error) {
	if to != optionType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		value := fmt.Sprint(data)
		return model.Option{Value: value, Label: value}, nil
	}
	return data, nil
}

func dateHook(now func() time.Time) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != timeType {
			return data, nil
		}
		if from == timeType {
			return data, nil
		}
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if strings.EqualFold(raw, "today") {
			y, m, d := now().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, nil
			}
		}
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, RFC 3339 or \"today\")", raw)
	}
}

// scalarStringHook coerces numbers and booleans into strings so
// dependsOnValues: [1, true] reads as ["1", "true"].
func scalarStringHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(data), nil
	}
	return data, nil
}
