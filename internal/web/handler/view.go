package handler

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Field describes one input of a generated admin form or list column.
type Field struct {
	Name     string // json name of the model field
	Label    string
	Type     string // text, textarea, url, color, number, select, checkbox, json
	Required bool
	Help     string
	Options  []Option
}

// Option is a select choice.
type Option struct {
	Value string
	Label string
}

// FormField is a Field with its current value and validation message.
type FormField struct {
	Field
	Value string
	Error string
}

// Field types.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldURL      = "url"
	FieldColor    = "color"
	FieldNumber   = "number"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldJSON     = "json"
)

// FieldValue returns the value of the struct field tagged json:"name" in v,
// searching embedded structs. It returns nil when no field matches.
func FieldValue(v any, name string) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)

		if f.Anonymous {
			if found := FieldValue(rv.Field(i).Addr().Interface(), name); found != nil {
				return found
			}

			continue
		}

		if tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; tag == name { //nolint:mnd
			return rv.Field(i).Interface()
		}
	}

	return nil
}

// Display renders a field value for an input or a list cell.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}

		return *t
	case *uint64:
		if t == nil {
			return ""
		}

		return fmt.Sprint(*t)
	case bool:
		if t {
			return "true"
		}

		return ""
	case map[string]any:
		if len(t) == 0 {
			return ""
		}

		out, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return ""
		}

		return string(out)
	default:
		return fmt.Sprint(t)
	}
}

// FormFields pairs fields with the values of item and the messages of errs.
func FormFields(fields []Field, item any, errs map[string]string) []FormField {
	out := make([]FormField, 0, len(fields))
	for _, f := range fields {
		out = append(out, FormField{
			Field: f,
			Value: Display(FieldValue(item, f.Name)),
			Error: errs[f.Name],
		})
	}

	return out
}
