// Package canonical renders values as canonical JSON: object keys sorted by
// byte order at every nesting level, array order preserved, scalars encoded
// per the standard JSON rules. Two semantically equal structures always
// produce identical bytes, which is what makes the output signable.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedValue is returned when a value cannot be rendered as JSON:
// cyclic structures, functions, channels, or unsupported numeric values
// such as NaN and infinities.
var ErrMalformedValue = errors.New("malformed value")

// Canonicalize renders v as a canonical JSON string.
//
// The function is pure and safe for concurrent use. It is idempotent:
// canonicalizing the parsed form of an already-canonical string yields the
// same string.
func Canonicalize(v any) (string, error) {
	// A first pass through the standard marshaller rejects cycles and
	// non-serializable members, and normalizes struct values into their
	// JSON shape before re-rendering with sorted keys.
	raw, err := marshalNoEscape(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	return CanonicalizeJSON(raw)
}

// CanonicalizeJSON re-renders an already-encoded JSON document canonically.
func CanonicalizeJSON(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	// json.Number keeps numeric literals exactly as written, so numbers
	// survive the round trip byte-for-byte.
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		enc, err := marshalNoEscape(val)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedValue, err)
		}
		buf.Write(enc)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			enc, err := marshalNoEscape(k)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedValue, err)
			}
			buf.Write(enc)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unsupported member of type %T", ErrMalformedValue, v)
	}
	return nil
}

// marshalNoEscape encodes v as JSON without the default HTML escaping of
// <, > and &. Validators recompute sign bytes with plain JSON string
// escaping, so the escaped form would break signature compatibility.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
