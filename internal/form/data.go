// Package form holds the field-value state backing a wizard's inputs.
package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Data maps field identifiers to primitive values: string, int, bool or []string.
// Setters merge one key at a time and never validate.
type Data struct {
	values map[string]any
}

// New creates a container seeded with the given defaults.
func New(defaults map[string]any) *Data {
	d := &Data{values: make(map[string]any, len(defaults))}
	for k, v := range defaults {
		d.values[k] = clone(v)
	}
	return d
}

// Set replaces the value of a single field, leaving the others untouched.
func (d *Data) Set(key string, value any) {
	d.values[key] = clone(value)
}

// Get returns the raw value of a field.
func (d *Data) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// String returns the field as a string. Ints are formatted, missing fields are "".
func (d *Data) String(key string) string {
	switch v := d.values[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ", ")
	default:
		return ""
	}
}

// Int returns the field as an int. Numeric strings are parsed; anything else is 0.
func (d *Data) Int(key string) int {
	switch v := d.values[key].(type) {
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Bool returns the field as a bool.
func (d *Data) Bool(key string) bool {
	v, _ := d.values[key].(bool)
	return v
}

// Strings returns a copy of a list field.
func (d *Data) Strings(key string) []string {
	v, _ := d.values[key].([]string)
	return slices.Clone(v)
}

// Filled reports whether a field holds a non-empty value: a non-blank string,
// a non-zero int, true, or a non-empty list.
func (d *Data) Filled(key string) bool {
	switch v := d.values[key].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case bool:
		return v
	case []string:
		return len(v) > 0
	default:
		return false
	}
}

// Toggle adds item to a list field if absent and removes it if present.
// The remaining items keep their insertion order.
func (d *Data) Toggle(key, item string) {
	list := d.Strings(key)
	if i := slices.Index(list, item); i >= 0 {
		d.values[key] = slices.Delete(list, i, i+1)
		return
	}
	d.values[key] = append(list, item)
}

// Contains reports whether a list field holds item.
func (d *Data) Contains(key, item string) bool {
	v, _ := d.values[key].([]string)
	return slices.Contains(v, item)
}

// Append adds item to the end of a list field.
func (d *Data) Append(key, item string) {
	d.values[key] = append(d.Strings(key), item)
}

// RemoveAt deletes the i-th element of a list field.
func (d *Data) RemoveAt(key string, i int) error {
	list := d.Strings(key)
	if i < 0 || i >= len(list) {
		return fmt.Errorf("%s: index %d out of range [0,%d)", key, i, len(list))
	}
	d.values[key] = slices.Delete(list, i, i+1)
	return nil
}

// SetAt replaces the i-th element of a list field.
func (d *Data) SetAt(key string, i int, item string) error {
	list := d.Strings(key)
	if i < 0 || i >= len(list) {
		return fmt.Errorf("%s: index %d out of range [0,%d)", key, i, len(list))
	}
	list[i] = item
	d.values[key] = list
	return nil
}

// Snapshot returns a deep copy of every field.
func (d *Data) Snapshot() map[string]any {
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		out[k] = clone(v)
	}
	return out
}

func clone(v any) any {
	if list, ok := v.([]string); ok {
		return slices.Clone(list)
	}
	return v
}
