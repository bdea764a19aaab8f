package goderive

import "fmt"

// ProductCodec is the codec derived from a ProductDescriptor and a Config.
// It is immutable and safe for concurrent use.
type ProductCodec[T any] struct {
	typeName    string
	fields      []productField[T]
	known       map[string]struct{}
	useDefaults bool
	strict      bool
}

type productField[T any] struct {
	key  string
	desc FieldDescriptor[T]
}

var _ ObjectShaped = (*ProductCodec[struct{}])(nil)

// DeriveProduct builds the codec for d under cfg. Field keys are computed
// once here: the per-field override wins, otherwise the configuration's
// field name transform applies.
func DeriveProduct[T any](d ProductDescriptor[T], cfg *Config) (*ProductCodec[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, withType(err, d.typeName)
	}
	c := &ProductCodec[T]{
		typeName:    d.typeName,
		fields:      make([]productField[T], 0, len(d.fields)),
		known:       make(map[string]struct{}, len(d.fields)),
		useDefaults: cfg.UseDefaults(),
		strict:      cfg.StrictDecoding(),
	}
	owner := make(map[string]string, len(d.fields))
	for _, fd := range d.fields {
		key := fd.key(cfg)
		if key == "" {
			return nil, &DeriveError{Code: CodeInvalidConfig, Type: d.typeName, Field: fd.name,
				Message: fmt.Sprintf("field %q maps to an empty key", fd.name)}
		}
		if prev, dup := owner[key]; dup {
			return nil, &DeriveError{Code: CodeDuplicateField, Type: d.typeName, Field: key,
				Message: fmt.Sprintf("fields %q and %q both map to key %q", prev, fd.name, key)}
		}
		owner[key] = fd.name
		c.known[key] = struct{}{}
		c.fields = append(c.fields, productField[T]{key: key, desc: fd})
	}
	return c, nil
}

// MustDeriveProduct is DeriveProduct that panics on error.
func MustDeriveProduct[T any](d ProductDescriptor[T], cfg *Config) *ProductCodec[T] {
	c, err := DeriveProduct(d, cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// TypeName returns the name of the derived type.
func (c *ProductCodec[T]) TypeName() string { return c.typeName }

// ObjectKeys lists the computed keys in encoding order.
func (c *ProductCodec[T]) ObjectKeys() []string {
	keys := make([]string, len(c.fields))
	for i, f := range c.fields {
		keys[i] = f.key
	}
	return keys
}

func (c *ProductCodec[T]) refs() []refTarget {
	var out []refTarget
	for _, f := range c.fields {
		out = append(out, refsOf(f.desc.codec)...)
	}
	return out
}

// Encode writes every field in descriptor order.
func (c *ProductCodec[T]) Encode(v T) Value {
	members := make([]Member, len(c.fields))
	for i, f := range c.fields {
		members[i] = Member{Key: f.key, Value: f.desc.encode(&v)}
	}
	return Value{kind: KindObject, members: members}
}

// Decode reads every field in descriptor order. Field failures come first;
// the strict unknown-key check runs only once all fields decoded.
func (c *ProductCodec[T]) Decode(v Value) (T, error) {
	var out T
	if v.Kind() != KindObject {
		return out, TypeMismatch("object", v.Kind())
	}
	idx := indexMembers(v.Members())
	for _, f := range c.fields {
		raw, ok := idx.get(f.key)
		if !ok {
			if c.useDefaults && f.desc.hasDefault {
				f.desc.setDefault(&out)
				continue
			}
			var zero T
			return zero, MissingField(f.key)
		}
		if err := f.desc.decode(raw, &out); err != nil {
			var zero T
			return zero, withSegment(err, Key(f.key))
		}
	}
	if c.strict {
		var extra []string
		for _, m := range v.Members() {
			if _, ok := c.known[m.Key]; !ok {
				extra = append(extra, m.Key)
			}
		}
		if len(extra) > 0 {
			var zero T
			return zero, UnexpectedField(extra)
		}
	}
	return out, nil
}

// memberIndex speeds up key lookups on large objects; small objects are
// scanned linearly.
type memberIndex struct {
	members []Member
	byKey   map[string]int
}

func indexMembers(ms []Member) memberIndex {
	idx := memberIndex{members: ms}
	if len(ms) > 16 {
		idx.byKey = make(map[string]int, len(ms))
		for i, m := range ms {
			idx.byKey[m.Key] = i
		}
	}
	return idx
}

func (x memberIndex) get(key string) (Value, bool) {
	if x.byKey != nil {
		i, ok := x.byKey[key]
		if !ok {
			return Value{}, false
		}
		return x.members[i].Value, true
	}
	for _, m := range x.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

func withType(err error, typeName string) error {
	if de, ok := AsDeriveError(err); ok && de.Type == "" {
		cp := *de
		cp.Type = typeName
		return &cp
	}
	return err
}
