package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// TimeLayout is the provider's timestamp format, with an embedded UTC offset
const TimeLayout = "2006-01-02T15:04:05-0700"

// column describes one named JSON value and how to store it into a row.
// read returns false when v does not have the column's type, in which case
// the row is left untouched.
type column[T any] struct {
	key      string
	kind     string
	optional bool
	read     func(row T, v any) bool
}

func stringColumn[T any](key string, set func(T, string)) column[T] {
	return column[T]{key: key, kind: "string", read: func(row T, v any) bool {
		s, ok := v.(string)
		if ok {
			set(row, s)
		}
		return ok
	}}
}

// intColumn accepts any JSON number, truncating fractions
func intColumn[T any](key string, set func(T, int)) column[T] {
	return column[T]{key: key, kind: "number", read: func(row T, v any) bool {
		f, ok := numberValue(v)
		if ok {
			set(row, int(f))
		}
		return ok
	}}
}

// integerColumn accepts only JSON numbers written without a fraction or exponent
func integerColumn[T any](key string, set func(T, int)) column[T] {
	return column[T]{key: key, kind: "integer", read: func(row T, v any) bool {
		i, ok := integerValue(v)
		if ok {
			set(row, i)
		}
		return ok
	}}
}

func floatColumn[T any](key string, set func(T, float64)) column[T] {
	return column[T]{key: key, kind: "number", read: func(row T, v any) bool {
		f, ok := numberValue(v)
		if ok {
			set(row, f)
		}
		return ok
	}}
}

func timeColumn[T any](key string, set func(T, time.Time)) column[T] {
	return column[T]{key: key, kind: "timestamp", read: func(row T, v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		t, err := time.Parse(TimeLayout, s)
		if err != nil {
			return false
		}
		set(row, t)
		return true
	}}
}

// optional marks a column whose key may be absent altogether
func optional[T any](c column[T]) column[T] {
	c.optional = true
	return c
}

// readFields reads every column from obj into a single row. Any absent
// required key or wrongly typed value fails the whole call.
func readFields[T any](obj map[string]any, path string, cols []column[T], row T) error {
	for _, c := range cols {
		v, ok := obj[c.key]
		if !ok {
			if c.optional {
				continue
			}
			return missing(join(path, c.key))
		}
		if !c.read(row, v) {
			return wrongType(join(path, c.key), c.kind)
		}
	}
	return nil
}

// readColumns transposes columnar arrays into rows: element i of every array
// goes into rows[i]. A column whose array is absent or not an array fails the
// whole call; an element of the wrong type only leaves that row's field at
// its default. Arrays longer than rows are truncated. It returns the number of
// rows touched by the longest array.
func readColumns[T any](obj map[string]any, path string, cols []column[T], rows []T) (int, error) {
	used := 0
	for _, c := range cols {
		v, ok := obj[c.key]
		if !ok && c.optional {
			continue
		}
		arr, isArray := v.([]any)
		if !ok {
			return 0, missing(join(path, c.key))
		}
		if !isArray {
			return 0, wrongType(join(path, c.key), "array")
		}

		n := min(len(arr), len(rows))
		for i := 0; i < n; i++ {
			c.read(rows[i], arr[i])
		}
		used = max(used, n)
	}
	return used, nil
}

// parseObject parses data as a single JSON document whose top level is an
// object. Numbers are kept as json.Number so integers survive exactly.
func parseObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	// Anything but whitespace after the document is malformed too
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Err: fmt.Errorf("%w: trailing data after document", ErrMalformed)}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, wrongType("", "object at top level")
	}
	return obj, nil
}

// objectAt returns the object stored under key
func objectAt(obj map[string]any, path, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, missing(join(path, key))
	}
	child, ok := v.(map[string]any)
	if !ok {
		return nil, wrongType(join(path, key), "object")
	}
	return child, nil
}

func numberValue(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func integerValue(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}
