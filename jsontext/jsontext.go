// Package jsontext converts between JSON text and goderive.Value, and
// runs derived codecs directly over bytes.
//
// Tokenizing goes through a pluggable Driver (go-json by default, the
// standard library as an alternative). Parsing always rejects duplicate
// object keys and trailing data.
package jsontext

import (
	"io"

	goderive "github.com/reoring/goderive"
)

// Decode parses data and decodes it with dec. Syntax problems are
// returned as *SyntaxError, shape problems as *goderive.DecodeError.
func Decode[T any](data []byte, dec goderive.Decoder[T], opts ...Option) (T, error) {
	v, err := Parse(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// DecodeReader is Decode over a stream.
func DecodeReader[T any](r io.Reader, dec goderive.Decoder[T], opts ...Option) (T, error) {
	v, err := ParseReader(r, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// Encode encodes v with enc and writes compact JSON.
func Encode[T any](v T, enc goderive.Encoder[T]) ([]byte, error) {
	return Marshal(enc.Encode(v))
}

// EncodeTo writes the JSON encoding of v to w.
func EncodeTo[T any](w io.Writer, v T, enc goderive.Encoder[T]) error {
	b, err := Encode(v, enc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
