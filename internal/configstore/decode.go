package configstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/jsonc"
)

// DecodeStrict decodes a (commented) json document into v.
// Unknown keys are rejected, as are missing keys for every struct field
// whose json tag is not marked "omitempty".
func DecodeStrict(data []byte, v any) error {
	data = jsonc.ToJSON(data)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range requiredKeys(reflect.TypeOf(v)) {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("missing field `%s`", key)
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func requiredKeys(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var result []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		if strings.Contains(options, "omitempty") {
			continue
		}
		if name == "" {
			name = field.Name
		}
		result = append(result, name)
	}
	return result
}
