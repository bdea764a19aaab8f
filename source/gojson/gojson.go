// Package gojson tokenizes JSON with goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/goderive/internal/engine"
)

// Name identifies this driver.
const Name = "go-json"

// Driver is the go-json backed driver.
type Driver struct{}

func (Driver) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (Driver) Name() string                          { return Name }

type source struct {
	in     *j.Decoder
	dec    *j.Decoder
	done   bool
	size   int64
	framer eng.Framer
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
//
// go-json's Decoder.Token skips separators without checking them, so each
// top-level value is first split off as a RawMessage and validated, then
// tokenized.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{in: j.NewDecoder(r)}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func parseError(err error) error {
	return &eng.SyntaxError{Code: "parse_error", Path: "/", Offset: -1, Message: err.Error(), Err: err}
}

func (s *source) NextToken() (eng.Token, error) {
	if s.dec == nil {
		var raw j.RawMessage
		if err := s.in.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return eng.Token{}, io.EOF
			}
			return eng.Token{}, parseError(err)
		}
		if !j.Valid(raw) || !literalOK(raw) {
			return eng.Token{}, parseError(errors.New("invalid JSON value"))
		}
		s.size = int64(len(raw))
		s.dec = j.NewDecoder(bytes.NewReader(raw))
		s.dec.UseNumber()
	}
	if s.done {
		return eng.Token{}, s.trailing()
	}
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.done = true
			return eng.Token{}, s.trailing()
		}
		return eng.Token{}, parseError(err)
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.framer.Open(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.framer.Open(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case '}':
			s.framer.Close()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case ']':
			s.framer.Close()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.framer.String() {
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.framer.Scalar()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

// literalOK rejects truncated top-level literals such as "tru", which
// go-json accepts when they are the whole input.
func literalOK(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return string(raw) == "true"
	case 'f':
		return string(raw) == "false"
	case 'n':
		return string(raw) == "null"
	}
	return true
}

// trailing reports whether anything but whitespace follows the first value.
func (s *source) trailing() error {
	var extra j.RawMessage
	err := s.in.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
		return io.EOF
	case err != nil:
		return parseError(err)
	default:
		return parseError(errors.New("unexpected data after top-level value"))
	}
}

// Location reports the size of the split-off value once it is known, so
// byte limits apply to whole values rather than to token offsets.
func (s *source) Location() int64 {
	if s.dec == nil {
		return -1
	}
	return s.size
}
