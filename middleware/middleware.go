// Package middleware wires derived codecs into HTTP handlers: request
// bodies are decoded with a goderive.Decoder and failures become JSON
// error payloads. Framework adapters live in the echo and gin sub-modules.
package middleware

import (
	"context"
	"errors"
	"net/http"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/jsontext"
)

// DefaultMaxBodyBytes caps request bodies read by DecodeRequest when no
// jsontext.WithMaxBytes option is given.
const DefaultMaxBodyBytes int64 = 1 << 20

// ctxKeyDecoded is a typed context key for storing a decoded T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches v to the context.
func ContextWithDecoded[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// DecodedFromContext retrieves a T stored by ContextWithDecoded or Bind.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// DefaultOptions returns the parse options used at HTTP boundaries.
// Duplicate keys are always rejected by jsontext.
func DefaultOptions() []jsontext.Option {
	return []jsontext.Option{jsontext.WithMaxBytes(DefaultMaxBodyBytes)}
}

// DecodeRequest parses r's body and decodes it with dec. With a byte bound
// in opts, or DefaultMaxBodyBytes when opts is empty, at most that many
// bytes plus one are read from the body.
func DecodeRequest[T any](r *http.Request, dec goderive.Decoder[T], opts ...jsontext.Option) (T, error) {
	if len(opts) == 0 {
		opts = DefaultOptions()
	}
	return jsontext.DecodeReader(r.Body, dec, opts...)
}

// Bind decodes each request body with dec and calls next with the result
// stored in the request context. Failures are answered with WriteError.
func Bind[T any](dec goderive.Decoder[T], next http.Handler, opts ...jsontext.Option) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := DecodeRequest(r, dec, opts...)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
	})
}

// WriteJSON encodes v with enc and writes it with the given status.
func WriteJSON[T any](w http.ResponseWriter, status int, v T, enc goderive.Encoder[T]) error {
	return WriteValue(w, status, enc.Encode(v))
}

// WriteValue writes v as a JSON response body.
func WriteValue(w http.ResponseWriter, status int, v goderive.Value) error {
	b, err := jsontext.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

// WriteError answers with StatusFor(err) and ErrorPayload(err).
func WriteError(w http.ResponseWriter, err error) {
	_ = WriteValue(w, StatusFor(err), ErrorPayload(err))
}

// StatusFor maps decoding errors to HTTP status codes.
func StatusFor(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	var se *jsontext.SyntaxError
	if errors.As(err, &se) {
		if se.Code == "max_bytes" {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	}
	if _, ok := goderive.AsDecodeError(err); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ErrorPayload shapes err for JSON responses:
//
//	{"error":{"code":"missing_field","path":"/owner","message":"..."}}
func ErrorPayload(err error) goderive.Value {
	code, path := "internal", "/"
	var se *jsontext.SyntaxError
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		code = "max_bytes"
	} else if errors.As(err, &se) {
		code, path = se.Code, se.Path
	} else if de, ok := goderive.AsDecodeError(err); ok {
		code, path = de.Code, de.Path.Pointer()
	} else if de, ok := goderive.AsDeriveError(err); ok {
		code = de.Code
	}
	body := []goderive.Member{
		{Key: "code", Value: goderive.NewString(code)},
		{Key: "path", Value: goderive.NewString(path)},
		{Key: "message", Value: goderive.NewString(err.Error())},
	}
	if de, ok := goderive.AsDecodeError(err); ok && len(de.Keys) > 0 {
		keys := make([]goderive.Value, len(de.Keys))
		for i, k := range de.Keys {
			keys[i] = goderive.NewString(k)
		}
		body = append(body, goderive.Member{Key: "keys", Value: goderive.NewArray(keys...)})
	}
	return goderive.NewObject(goderive.Member{Key: "error", Value: goderive.NewObject(body...)})
}
