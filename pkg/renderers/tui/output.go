package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/validation"
)

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

// flattenForm encodes values with section rows addressed as
// "section[i].field".
func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, func(key, value string) {
		flattened.Set(key, value)
	})
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	flatten("", values, func(key, value string) {
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	})
	return b.String()
}

func flatten(prefix string, value any, emit func(key, value string)) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, v[key], emit)
		}
	case []any:
		for idx, val := range v {
			flatten(fmt.Sprintf("%s[%d]", prefix, idx), val, emit)
		}
	default:
		if prefix != "" {
			emit(prefix, validation.StringValue(v))
		}
	}
}
