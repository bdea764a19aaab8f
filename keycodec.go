package goderive

import (
	"sort"
	"strconv"
)

// KeyEncoder turns a map key into an object key. The mapping must be
// injective over the keys a program actually uses: distinct keys that
// encode to the same string collapse silently.
type KeyEncoder[K any] interface {
	EncodeKey(k K) string
}

// KeyDecoder parses an object key back into a map key. ok=false means the
// string is not a valid K.
type KeyDecoder[K any] interface {
	DecodeKey(s string) (k K, ok bool)
}

// KeyCodec pairs a KeyEncoder and a KeyDecoder.
type KeyCodec[K any] interface {
	KeyEncoder[K]
	KeyDecoder[K]
}

// NewKeyCodec builds a KeyCodec from two functions.
func NewKeyCodec[K any](enc func(K) string, dec func(string) (K, bool)) KeyCodec[K] {
	return keyFuncs[K]{enc: enc, dec: dec}
}

type keyFuncs[K any] struct {
	enc func(K) string
	dec func(string) (K, bool)
}

func (k keyFuncs[K]) EncodeKey(v K) string           { return k.enc(v) }
func (k keyFuncs[K]) DecodeKey(s string) (K, bool) { return k.dec(s) }

// StringKey is the identity key codec for string-like keys.
func StringKey[K ~string]() KeyCodec[K] {
	return NewKeyCodec(
		func(k K) string { return string(k) },
		func(s string) (K, bool) { return K(s), true },
	)
}

// IntKey encodes int keys in base 10.
func IntKey() KeyCodec[int] {
	return NewKeyCodec(strconv.Itoa, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})
}

// Int64Key encodes int64 keys in base 10.
func Int64Key() KeyCodec[int64] {
	return NewKeyCodec(
		func(n int64) string { return strconv.FormatInt(n, 10) },
		func(s string) (int64, bool) {
			n, err := strconv.ParseInt(s, 10, 64)
			return n, err == nil
		},
	)
}

// MapOf returns a codec for map[K]V encoded as a JSON object. Entries are
// written in ascending order of their encoded key so that encoding is
// deterministic regardless of Go's map iteration order.
func MapOf[K comparable, V any](keys KeyCodec[K], values Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{keys: keys, values: values}
}

type mapCodec[K comparable, V any] struct {
	keys   KeyCodec[K]
	values Codec[V]
}

func (c mapCodec[K, V]) refs() []refTarget { return refsOf(c.values) }

func (c mapCodec[K, V]) Encode(m map[K]V) Value {
	members := make([]Member, 0, len(m))
	for k, v := range m {
		members = append(members, Member{Key: c.keys.EncodeKey(k), Value: c.values.Encode(v)})
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	return NewObject(members...)
}

func (c mapCodec[K, V]) Decode(v Value) (map[K]V, error) {
	if v.Kind() != KindObject {
		return nil, TypeMismatch("object", v.Kind())
	}
	out := make(map[K]V, v.Len())
	for _, m := range v.Members() {
		val, err := c.values.Decode(m.Value)
		if err != nil {
			return nil, withSegment(err, Key(m.Key))
		}
		k, ok := c.keys.DecodeKey(m.Key)
		if !ok {
			return nil, KeyDecodingFailure(m.Key).at(Key(m.Key))
		}
		out[k] = val
	}
	return out, nil
}
