package core

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// EncodeFormValues flattens a nested parameter mapping into form values using
// bracket notation: parent[child]=value, parent[0][field]=value. Nil values
// encode as the empty-string unset sentinel.
func EncodeFormValues(params map[string]any) url.Values {
	values := url.Values{}
	encodeMapping(values, "", params)
	return values
}

func encodeMapping(values url.Values, prefix string, params map[string]any) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		encodeFormValue(values, bracketKey(prefix, key), params[key])
	}
}

func encodeFormValue(values url.Values, key string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		encodeMapping(values, key, typed)
	case []any:
		for index, element := range typed {
			encodeFormValue(values, bracketKey(key, strconv.Itoa(index)), element)
		}
	case nil:
		values.Add(key, UnsetSentinel)
	case string:
		values.Add(key, typed)
	case bool:
		values.Add(key, strconv.FormatBool(typed))
	case int:
		values.Add(key, strconv.Itoa(typed))
	case int64:
		values.Add(key, strconv.FormatInt(typed, 10))
	case float64:
		values.Add(key, strconv.FormatFloat(typed, 'f', -1, 64))
	default:
		values.Add(key, fmt.Sprint(typed))
	}
}

func bracketKey(prefix string, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}
