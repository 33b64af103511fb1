package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ErrKeyCase is returned by [CheckExactKeys].
var ErrKeyCase = errors.New("json key differs from field name only in case")

// CheckExactKeys rejects a top-level key of the JSON object data that
// matches one of v's json field names only when case is ignored.
// encoding/json binds such keys to the field, and a later one silently
// overrides the exact key. Documents that are not objects are left to the
// decoder.
func CheckExactKeys(data []byte, v any) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	names := jsonFieldNames(reflect.TypeOf(v))
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := names[key]; ok {
			continue
		}
		for name := range names {
			if strings.EqualFold(key, name) {
				return fmt.Errorf("%w: %q for %q", ErrKeyCase, key, name)
			}
		}
	}

	return nil
}

func jsonFieldNames(t reflect.Type) map[string]struct{} {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make(map[string]struct{})
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[name] = struct{}{}
	}

	return names
}
