// Package json tokenizes JSON with the standard library's encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	eng "github.com/reoring/goderive/internal/engine"
)

// Name identifies this driver.
const Name = "encoding/json"

// Driver is the encoding/json backed driver.
type Driver struct{}

func (Driver) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (Driver) Name() string                          { return Name }

type jsonSource struct {
	dec        *json.Decoder
	framer     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, &eng.SyntaxError{Code: "parse_error", Path: "/", Offset: s.dec.InputOffset(), Message: err.Error(), Err: err}
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.framer.Open(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: s.lastOffset}, nil
		case '[':
			s.framer.Open(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: s.lastOffset}, nil
		case '}':
			s.framer.Close()
			return eng.Token{Kind: eng.KindEndObject, Offset: s.lastOffset}, nil
		case ']':
			s.framer.Close()
			return eng.Token{Kind: eng.KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if s.framer.String() {
			return eng.Token{Kind: eng.KindKey, String: v, Offset: s.lastOffset}, nil
		}
		return eng.Token{Kind: eng.KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}, nil
	}
	s.framer.Scalar()
	return eng.Token{Kind: eng.KindNull, Offset: s.lastOffset}, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
