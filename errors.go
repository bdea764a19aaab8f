package goderive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goderive/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// Decode time.
	CodeTypeMismatch        = "type_mismatch"
	CodeMissingField        = "missing_field"
	CodeUnexpectedField     = "unexpected_field"
	CodeUnknownConstructor  = "unknown_constructor"
	CodeMalformedSumWrapper = "malformed_sum_wrapper"
	CodeKeyDecodingFailure  = "key_decoding_failure"
	CodeConversion          = "conversion"

	// Derivation time.
	CodeDuplicateTag                = "duplicate_tag"
	CodeInvalidDiscriminatorPayload = "invalid_discriminator_payload"
	CodeDiscriminatorFieldConflict  = "discriminator_field_conflict"
	CodeDuplicateField              = "duplicate_field"
	CodeInvalidConfig               = "invalid_config"
	CodeNotRegistered               = "not_registered"
	CodeAlreadyRegistered           = "already_registered"
)

// Sentinels for errors.Is. They match any error carrying the same code.
var (
	ErrTypeMismatch        error = &DecodeError{Code: CodeTypeMismatch}
	ErrMissingField        error = &DecodeError{Code: CodeMissingField}
	ErrUnexpectedField     error = &DecodeError{Code: CodeUnexpectedField}
	ErrUnknownConstructor  error = &DecodeError{Code: CodeUnknownConstructor}
	ErrMalformedSumWrapper error = &DecodeError{Code: CodeMalformedSumWrapper}
	ErrKeyDecodingFailure  error = &DecodeError{Code: CodeKeyDecodingFailure}
	ErrConversion          error = &DecodeError{Code: CodeConversion}

	ErrDuplicateTag                error = &DeriveError{Code: CodeDuplicateTag}
	ErrInvalidDiscriminatorPayload error = &DeriveError{Code: CodeInvalidDiscriminatorPayload}
	ErrDiscriminatorFieldConflict  error = &DeriveError{Code: CodeDiscriminatorFieldConflict}
	ErrDuplicateField              error = &DeriveError{Code: CodeDuplicateField}
	ErrInvalidConfig               error = &DeriveError{Code: CodeInvalidConfig}
	ErrNotRegistered               error = &DeriveError{Code: CodeNotRegistered}
	ErrAlreadyRegistered           error = &DeriveError{Code: CodeAlreadyRegistered}
)

// DecodeError describes why a Value could not be decoded and where.
type DecodeError struct {
	Code string
	Path Path
	// Expected names the wanted shape for type_mismatch ("object", "integer", ...).
	Expected string
	// Got is the kind actually found for type_mismatch.
	Got Kind
	// Key is the missing field, the unknown tag or the rejected map key.
	Key string
	// Keys lists every unexpected field, in input order.
	Keys []string
	// Reason is the conversion failure text.
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	b := &strings.Builder{}
	// e.g. missing_field at /owner: required field missing (lastName)
	fmt.Fprintf(b, "%s at %s: %s", e.Code, e.Path.Pointer(), i18n.T(e.Code, e.params()))
	switch e.Code {
	case CodeTypeMismatch:
		fmt.Fprintf(b, " (expected %s, got %s)", e.Expected, e.Got)
	case CodeMissingField, CodeUnknownConstructor, CodeKeyDecodingFailure:
		fmt.Fprintf(b, " (%q)", e.Key)
	case CodeUnexpectedField:
		fmt.Fprintf(b, " (%s)", strings.Join(quoteAll(e.Keys), ", "))
	case CodeConversion:
		if e.Reason != "" {
			fmt.Fprintf(b, " (%s)", e.Reason)
		}
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Is matches sentinels by code.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Code == e.Code
}

func (e *DecodeError) params() map[string]string {
	return map[string]string{"expected": e.Expected, "key": e.Key}
}

// at returns a copy of e whose path starts with s.
func (e *DecodeError) at(s Segment) *DecodeError {
	cp := *e
	cp.Path = e.Path.prepend(s)
	return &cp
}

// TypeMismatch reports a value of the wrong kind.
func TypeMismatch(expected string, got Kind) *DecodeError {
	return &DecodeError{Code: CodeTypeMismatch, Expected: expected, Got: got}
}

// MissingField reports an absent object key.
func MissingField(key string) *DecodeError {
	return &DecodeError{Code: CodeMissingField, Key: key}
}

// UnexpectedField reports keys not recognized under strict decoding.
func UnexpectedField(keys []string) *DecodeError {
	return &DecodeError{Code: CodeUnexpectedField, Keys: append([]string(nil), keys...)}
}

// UnknownConstructor reports a tag that names no variant.
func UnknownConstructor(tag string) *DecodeError {
	return &DecodeError{Code: CodeUnknownConstructor, Key: tag}
}

// MalformedSumWrapper reports a wrapper object without exactly one key.
func MalformedSumWrapper() *DecodeError {
	return &DecodeError{Code: CodeMalformedSumWrapper}
}

// KeyDecodingFailure reports a map key rejected by its KeyDecoder.
func KeyDecodingFailure(raw string) *DecodeError {
	return &DecodeError{Code: CodeKeyDecodingFailure, Key: raw}
}

// Conversion reports a failed value conversion.
func Conversion(reason string, cause error) *DecodeError {
	return &DecodeError{Code: CodeConversion, Reason: reason, Cause: cause}
}

// AsDecodeError extracts a *DecodeError using errors.As internally.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// withSegment prefixes the path of a decode error with s. Errors that are
// not *DecodeError come from hand-written decoders and are wrapped as
// conversion failures so callers always get a located error.
func withSegment(err error, s Segment) error {
	if de, ok := AsDecodeError(err); ok {
		return de.at(s)
	}
	return Conversion(err.Error(), err).at(s)
}

// asDecodeError normalizes an error from a payload or field decoder.
func asDecodeError(err error) error {
	if _, ok := AsDecodeError(err); ok {
		return err
	}
	return Conversion(err.Error(), err)
}

// DeriveError is returned when a descriptor and configuration cannot be
// turned into a codec. It is raised once, before any value is processed.
type DeriveError struct {
	Code string
	// Type is the descriptor's type name.
	Type string
	// Tag is the transformed tag or the discriminator involved.
	Tag string
	// Field is the transformed field key involved.
	Field string
	// Variants lists the original variant tags that collided.
	Variants []string
	Message  string
}

func (e *DeriveError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "goderive: %s", e.Code)
	if e.Type != "" {
		fmt.Fprintf(b, " in %s", e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else {
		b.WriteString(": ")
		b.WriteString(i18n.T(e.Code, nil))
	}
	return b.String()
}

// Is matches sentinels by code.
func (e *DeriveError) Is(target error) bool {
	t, ok := target.(*DeriveError)
	return ok && t.Code == e.Code
}

// AsDeriveError extracts a *DeriveError using errors.As internally.
func AsDeriveError(err error) (*DeriveError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DeriveError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
