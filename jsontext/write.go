package jsontext

import (
	"bytes"
	"fmt"
	"strings"

	j "github.com/goccy/go-json"

	goderive "github.com/reoring/goderive"
)

// Marshal writes v as compact JSON. Object members keep their order.
func Marshal(v goderive.Value) ([]byte, error) {
	return Append(nil, v)
}

// Append is Marshal writing into dst.
func Append(dst []byte, v goderive.Value) ([]byte, error) {
	return appendValue(dst, v)
}

// MarshalIndent is Marshal with one member or element per line.
func MarshalIndent(v goderive.Value, prefix, indent string) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendValue(dst []byte, v goderive.Value) ([]byte, error) {
	switch v.Kind() {
	case goderive.KindNull:
		return append(dst, "null"...), nil
	case goderive.KindBool:
		if b, _ := v.Bool(); b {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case goderive.KindNumber:
		text, _ := v.Number()
		if !validNumber(text) {
			return nil, fmt.Errorf("jsontext: invalid number %q", text)
		}
		return append(dst, text...), nil
	case goderive.KindString:
		s, _ := v.Str()
		return appendString(dst, s)
	case goderive.KindArray:
		dst = append(dst, '[')
		for i, it := range v.Items() {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendValue(dst, it); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case goderive.KindObject:
		dst = append(dst, '{')
		for i, m := range v.Members() {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendString(dst, m.Key); err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			if dst, err = appendValue(dst, m.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("jsontext: unknown kind %s", v.Kind())
	}
}

func appendString(dst []byte, s string) ([]byte, error) {
	b, err := j.MarshalWithOption(s, j.DisableHTMLEscape())
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// validNumber accepts exactly the JSON number grammar.
func validNumber(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	if c := s[len(s)-1]; c < '0' || c > '9' {
		return false
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return false
	}
	return j.Valid([]byte(s))
}
