package goderive

import (
	"math"
	"strconv"
)

// Kind enumerates the JSON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a single key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON tree. The zero Value is null.
//
// Numbers are kept as their decimal text so no precision is lost between
// the parser and the codec that finally interprets them. Object keys are
// unique and keep their insertion order.
type Value struct {
	kind    Kind
	b       bool
	s       string // string payload or number text
	items   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// NewBool returns a JSON boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewString returns a JSON string.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewNumber returns a JSON number holding text verbatim. The text is not
// validated here; jsontext rejects malformed numbers when writing.
func NewNumber(text string) Value { return Value{kind: KindNumber, s: text} }

// NewInt returns a JSON number for an integer.
func NewInt(n int64) Value { return NewNumber(strconv.FormatInt(n, 10)) }

// NewUint returns a JSON number for an unsigned integer.
func NewUint(n uint64) Value { return NewNumber(strconv.FormatUint(n, 10)) }

// NewFloat returns a JSON number for f. NaN and infinities have no JSON
// representation and become null.
func NewFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return NewNumber(strconv.FormatFloat(f, 'g', -1, 64))
}

// NewArray returns a JSON array of items.
func NewArray(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// NewObject returns a JSON object. When a key repeats, the later value
// replaces the earlier one and keeps the earlier position.
func NewObject(members ...Member) Value {
	out := make([]Member, 0, len(members))
	var seen map[string]int
	if len(members) > 8 {
		seen = make(map[string]int, len(members))
	}
	for _, m := range members {
		idx := -1
		if seen != nil {
			if i, ok := seen[m.Key]; ok {
				idx = i
			}
		} else {
			for i := range out {
				if out[i].Key == m.Key {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			out[idx].Value = m.Value
			continue
		}
		if seen != nil {
			seen[m.Key] = len(out)
		}
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Number returns the decimal text of a number.
func (v Value) Number() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.s, true
}

// Items returns the elements of an array, or nil for other kinds. The
// returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Members returns the entries of an object in order, or nil for other
// kinds. The returned slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get looks up key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether an object contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	ms := v.Members()
	if ms == nil {
		return nil
	}
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

// With returns a copy of the object with key set to val. An existing key
// keeps its position; a new key is appended. Non-objects are treated as
// the empty object.
func (v Value) With(key string, val Value) Value {
	ms := v.Members()
	out := make([]Member, 0, len(ms)+1)
	replaced := false
	for _, m := range ms {
		if m.Key == key {
			out = append(out, Member{Key: key, Value: val})
			replaced = true
			continue
		}
		out = append(out, m)
	}
	if !replaced {
		out = append(out, Member{Key: key, Value: val})
	}
	return Value{kind: KindObject, members: out}
}

// Without returns a copy of the object with key removed.
func (v Value) Without(key string) Value {
	if v.kind != KindObject {
		return v
	}
	out := make([]Member, 0, len(v.members))
	for _, m := range v.members {
		if m.Key != key {
			out = append(out, m)
		}
	}
	return Value{kind: KindObject, members: out}
}

// Equal reports structural equality. Object member order is significant,
// numbers compare by their text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
