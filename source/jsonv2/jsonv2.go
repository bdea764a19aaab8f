//go:build goexperiment.jsonv2

// Package jsonv2 tokenizes JSON with encoding/json/jsontext. It needs
// GOEXPERIMENT=jsonv2; with it set, jsontext.UseDriver(jsonv2.Name) selects it.
package jsonv2

import (
	"bytes"
	"encoding/json/jsontext"
	"errors"
	"io"

	eng "github.com/reoring/goderive/internal/engine"
)

// Name identifies this driver.
const Name = "encoding/json/v2"

type Driver struct{}

func (Driver) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (Driver) Name() string                          { return Name }

type source struct {
	dec    *jsontext.Decoder
	framer eng.Framer
}

// NewReader streams tokens from r. Duplicate names are left to the
// enforcement layer so they surface as duplicate_key with a path.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{dec: jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))}
}

func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.ReadToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, &eng.SyntaxError{Code: "parse_error", Path: "/", Offset: s.dec.InputOffset(), Message: err.Error(), Err: err}
	}
	off := s.dec.InputOffset()
	switch tok.Kind() {
	case '{':
		s.framer.Open(true)
		return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
	case '[':
		s.framer.Open(false)
		return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
	case '}':
		s.framer.Close()
		return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
	case ']':
		s.framer.Close()
		return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
	case '"':
		if s.framer.String() {
			return eng.Token{Kind: eng.KindKey, String: tok.String(), Offset: off}, nil
		}
		return eng.Token{Kind: eng.KindString, String: tok.String(), Offset: off}, nil
	case '0':
		s.framer.Scalar()
		// String on a number token is its raw text.
		return eng.Token{Kind: eng.KindNumber, Number: tok.String(), Offset: off}, nil
	case 't', 'f':
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindBool, Bool: tok.Bool(), Offset: off}, nil
	default:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	}
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
