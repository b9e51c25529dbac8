// Package navigator resolves column fields inside row values. A field is
// either a literal key or a path such as "meta.owner", "tags[0]" or
// `labels["app.kubernetes.io/name"]`.
package navigator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Lookup returns the value of field in row. A literal key wins over a
// path of the same spelling.
func Lookup(row any, field string) (any, error) {
	if m, ok := row.(map[string]any); ok {
		if v, found := m[field]; found {
			return v, nil
		}
	}
	path := strings.TrimSpace(field)
	if path == "" {
		return nil, fmt.Errorf("empty field")
	}
	cur := row
	for _, p := range parsePath(path) {
		cur = navigateStep(cur, p)
		if errResult, ok := cur.(error); ok {
			return nil, errResult
		}
	}
	return cur, nil
}

// Value is Lookup without the error; missing fields are nil.
func Value(row map[string]any, field string) any {
	v, err := Lookup(row, field)
	if err != nil {
		return nil
	}
	return v
}

// IsPath reports whether field descends into nested values.
func IsPath(field string) bool {
	return strings.ContainsAny(field, ".[")
}

// parsePath splits a path into navigation steps, handling both dot and bracket notation
// Examples: "items.0" -> ["items", "0"]
//
//	"items[0]" -> ["items", "0"]
//	"items[0].tags" -> ["items", "0", "tags"]
//	"regions.asia.countries[1]" -> ["regions", "asia", "countries", "1"]
func parsePath(path string) []string {
	var parts []string
	var current strings.Builder

	for i := 0; i < len(path); i++ {
		ch := path[i]
		switch ch {
		case '.':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		case '[':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			// Find the closing bracket
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, path[i+1:j])
				i = j
			}
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// navigateStep navigates a single step (key or index) in the data structure.
func navigateStep(cur interface{}, step string) interface{} {
	key := step
	if strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) && len(key) > 1 {
		key = key[1 : len(key)-1]
	}

	switch t := cur.(type) {
	case map[string]interface{}:
		v, ok := t[key]
		if !ok {
			return fmt.Errorf("key '%s' not found", key)
		}
		return v
	case []interface{}:
		// try parse step as integer index
		idx, err := strconv.Atoi(step)
		if err != nil {
			return fmt.Errorf("expected numeric index into array but got '%s'", step)
		}
		if idx < 0 || idx >= len(t) {
			return fmt.Errorf("index %d out of range", idx)
		}
		return t[idx]
	default:
		rv := reflect.ValueOf(cur)
		if !rv.IsValid() {
			return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
		}

		for rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
			}
			rv = rv.Elem()
		}

		switch rv.Kind() { //nolint:exhaustive // only handle container kinds relevant to navigation
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
			}
			mapKey := reflect.ValueOf(key).Convert(rv.Type().Key())
			value := rv.MapIndex(mapKey)
			if !value.IsValid() {
				return fmt.Errorf("key '%s' not found", key)
			}
			return value.Interface()
		case reflect.Slice, reflect.Array:
			idx, err := strconv.Atoi(step)
			if err != nil {
				return fmt.Errorf("expected numeric index into array but got '%s'", step)
			}
			if idx < 0 || idx >= rv.Len() {
				return fmt.Errorf("index %d out of range", idx)
			}
			return rv.Index(idx).Interface()
		case reflect.Struct:
			if field, ok := structFieldValue(rv, key); ok {
				return field
			}
			return fmt.Errorf("key '%s' not found", key)
		default:
			return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
		}
	}
}

func structFieldValue(rv reflect.Value, key string) (interface{}, bool) {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		tagName := strings.Split(tag, ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName == key || field.Name == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
