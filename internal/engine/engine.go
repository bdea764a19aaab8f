package engine

import "fmt"

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SyntaxError reports malformed or rejected JSON text.
type SyntaxError struct {
	Code    string // parse_error, duplicate_key, max_depth, max_bytes, trailing_data
	Path    string
	Offset  int64
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("json: %s at %s (offset %d): %s", e.Code, e.Path, e.Offset, e.Message)
	}
	return fmt.Sprintf("json: %s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// Framer tracks container nesting for drivers whose underlying tokenizer
// does not distinguish object keys from string values.
type Framer struct {
	stack []frame
}

// Open records '{' or '['.
func (f *Framer) Open(object bool) {
	if object {
		f.stack = append(f.stack, frame{kind: kindObject, expectingKey: true})
		return
	}
	f.stack = append(f.stack, frame{kind: kindArray})
}

// Close records '}' or ']'; the closed container counts as a value of its parent.
func (f *Framer) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
}

// String classifies a string token: true when it is an object key.
func (f *Framer) String() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	f.valueDone()
	return false
}

// Scalar records a non-string scalar value.
func (f *Framer) Scalar() { f.valueDone() }

func (f *Framer) valueDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
