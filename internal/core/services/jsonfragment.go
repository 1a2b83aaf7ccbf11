package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrNoJSONFragment indicates generated text held no balanced JSON array or object.
var ErrNoJSONFragment = errors.New("no JSON fragment in response")

// ExtractJSON decodes the first balanced JSON array or object in text into v.
//
// Candidates are found by scanning brackets left to right, honouring string
// literals and escapes, so nested arrays and objects are captured whole.
// A candidate that is balanced but does not decode into v is skipped and the
// scan continues from the next opening bracket. Each candidate decodes into a
// fresh value, so v only ever holds the fields of the candidate that succeeded.
// v must be a non-nil pointer.
func ExtractJSON(text string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode JSON fragment: non-nil pointer required, got %T", v)
	}

	var lastErr error
	found := false

	for start := 0; start < len(text); start++ {
		if text[start] != '[' && text[start] != '{' {
			continue
		}
		end := matchBracket(text, start)
		if end < 0 {
			continue
		}
		found = true

		fresh := reflect.New(rv.Elem().Type())
		err := json.Unmarshal([]byte(text[start:end+1]), fresh.Interface())
		if err == nil {
			rv.Elem().Set(fresh.Elem())
			return nil
		}
		lastErr = err
	}

	if !found {
		return ErrNoJSONFragment
	}
	return fmt.Errorf("decode JSON fragment: %w", lastErr)
}

// matchBracket returns the index of the bracket closing the one at start,
// or -1 if the span never balances.
func matchBracket(text string, start int) int {
	stack := make([]byte, 0, 8)
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}
