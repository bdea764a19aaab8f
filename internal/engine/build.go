package engine

import (
	"errors"
	"io"

	goderive "github.com/reoring/goderive"
)

// BuildValue reads exactly one JSON value from src. Input remaining after
// that value is an error.
func BuildValue(src TokenSource) (goderive.Value, error) {
	tok, err := next(src)
	if err != nil {
		return goderive.Value{}, err
	}
	v, err := buildValue(src, tok)
	if err != nil {
		return goderive.Value{}, err
	}
	extra, err := src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return goderive.Value{}, trailing(src, err.Error(), err)
	default:
		return goderive.Value{}, trailing(src, "unexpected "+extra.Kind.String()+" after top-level value", nil)
	}
}

func trailing(src TokenSource, msg string, cause error) error {
	return &SyntaxError{Code: "trailing_data", Path: "/", Offset: src.Location(), Message: msg, Err: cause}
}

// next is NextToken where a premature end of input is an error.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, &SyntaxError{Code: "parse_error", Path: "/", Offset: src.Location(), Message: "unexpected end of input", Err: io.ErrUnexpectedEOF}
	}
	return tok, err
}

func buildValue(src TokenSource, tok Token) (goderive.Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src)
	case KindBeginArray:
		return buildArray(src)
	case KindString:
		return goderive.NewString(tok.String), nil
	case KindNumber:
		return goderive.NewNumber(tok.Number), nil
	case KindBool:
		return goderive.NewBool(tok.Bool), nil
	case KindNull:
		return goderive.Null(), nil
	default:
		return goderive.Value{}, &SyntaxError{Code: "parse_error", Path: "/", Offset: src.Location(), Message: "unexpected " + tok.Kind.String()}
	}
}

func buildObject(src TokenSource) (goderive.Value, error) {
	var members []goderive.Member
	for {
		tok, err := next(src)
		if err != nil {
			return goderive.Value{}, err
		}
		if tok.Kind == KindEndObject {
			return goderive.NewObject(members...), nil
		}
		if tok.Kind != KindKey {
			return goderive.Value{}, &SyntaxError{Code: "parse_error", Path: "/", Offset: src.Location(), Message: "expected object key, got " + tok.Kind.String()}
		}
		vt, err := next(src)
		if err != nil {
			return goderive.Value{}, err
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return goderive.Value{}, err
		}
		members = append(members, goderive.Member{Key: tok.String, Value: v})
	}
}

func buildArray(src TokenSource) (goderive.Value, error) {
	var items []goderive.Value
	for {
		tok, err := next(src)
		if err != nil {
			return goderive.Value{}, err
		}
		if tok.Kind == KindEndArray {
			return goderive.NewArray(items...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return goderive.Value{}, err
		}
		items = append(items, v)
	}
}
