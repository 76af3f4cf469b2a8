package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// structFields walks the settable fields of the struct pointed to by v and
// calls set for every field not skipped by its tag.
func structFields(v any, tag string, set func(name string, field reflect.Value, typ reflect.Type) error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: need a non-nil pointer, got %T", ErrInvalidTarget, v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: need a pointer to struct, got %T", ErrInvalidTarget, v)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, skip := fieldName(sf, tag)
		if skip {
			continue
		}
		if err := set(name, field, sf.Type); err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
	}
	return nil
}

// bindValues copies values[name] into the matching fields of v.
func bindValues(v any, tag string, values map[string][]string) error {
	return structFields(v, tag, func(name string, field reflect.Value, typ reflect.Type) error {
		vals := values[name]
		if len(vals) == 0 {
			return nil
		}
		return setValue(field, typ, vals)
	})
}

// fieldName returns the source key for sf. Fields without a tag for this
// source are skipped, so a form value can never overwrite a path value.
func fieldName(sf reflect.StructField, tag string) (string, bool) {
	t, ok := sf.Tag.Lookup(tag)
	if !ok || t == "" || t == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(t, ",")
	return name, false
}

func setValue(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if values[0] == "" {
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setValue(field.Elem(), typ.Elem(), values)
	case reflect.Slice:
		return setSlice(field, typ, values)
	}
	return setScalar(field, typ, strings.TrimSpace(values[0]), values[0])
}

// setScalar parses trimmed for numbers and bools; strings keep raw as sent.
func setScalar(field reflect.Value, typ reflect.Type, trimmed, raw string) error {
	switch typ.Kind() {
	case reflect.String:
		field.SetString(raw)
		return nil
	}

	if trimmed == "" {
		return nil
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(trimmed, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", trimmed)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(trimmed, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", trimmed)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(trimmed, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", trimmed)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := parseBool(trimmed)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", typ.Kind())
	}
	return nil
}

// parseBool also accepts the values HTML checkboxes send.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid bool %q", s)
	}
	return b, nil
}

func setSlice(field reflect.Value, typ reflect.Type, values []string) error {
	var parts []string
	for _, v := range values {
		for p := range strings.SplitSeq(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}

	slice := reflect.MakeSlice(typ, len(parts), len(parts))
	for i, p := range parts {
		if err := setValue(slice.Index(i), typ.Elem(), []string{p}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
