package goderive_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goderive "github.com/reoring/goderive"
)

type Foo string

func fooKeys() goderive.KeyCodec[Foo] {
	return goderive.NewKeyCodec(
		func(f Foo) string { return string(f) },
		func(s string) (Foo, bool) { return Foo(s), !strings.HasPrefix(s, "_") },
	)
}

func TestMapOf_RoundTrip(t *testing.T) {
	c := goderive.MapOf(fooKeys(), goderive.Int())

	got := c.Encode(map[Foo]int{"hello": 123})
	if diff := cmp.Diff(obj(kv("hello", num(123))), got); diff != "" {
		t.Fatalf("encode mismatch (-want +got):\n%s", diff)
	}

	back, err := c.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, map[Foo]int{"hello": 123}, back)
}

func TestMapOf_EncodesInKeyOrder(t *testing.T) {
	c := goderive.MapOf(goderive.IntKey(), goderive.String())

	got := c.Encode(map[int]string{10: "ten", 2: "two", 1: "one"})
	assert.Equal(t, []string{"1", "10", "2"}, got.Keys())
}

func TestMapOf_KeyDecodingFailure(t *testing.T) {
	c := goderive.MapOf(fooKeys(), goderive.Int())

	_, err := c.Decode(obj(kv("ok", num(1)), kv("_hidden", num(2))))
	require.ErrorIs(t, err, goderive.ErrKeyDecodingFailure)
	de, _ := goderive.AsDecodeError(err)
	assert.Equal(t, "_hidden", de.Key)
	assert.Equal(t, "/_hidden", de.Path.Pointer())

	type Holder struct{ M map[Foo]int }
	h := goderive.MustDeriveProduct(goderive.Product[Holder]("Holder",
		goderive.Field("m", func(h *Holder) *map[Foo]int { return &h.M }, c),
	), nil)
	_, err = h.Decode(obj(kv("m", obj(kv("_hidden", num(2))))))
	de, ok := goderive.AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, goderive.CodeKeyDecodingFailure, de.Code)
	assert.Equal(t, "/m/_hidden", de.Path.Pointer())
}

func TestMapOf_ValueErrorCarriesKey(t *testing.T) {
	c := goderive.MapOf(goderive.StringKey[string](), goderive.Int())

	_, err := c.Decode(obj(kv("a/b", str("x"))))
	de, ok := goderive.AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, goderive.CodeTypeMismatch, de.Code)
	assert.Equal(t, "/a~1b", de.Path.Pointer())

	_, err = c.Decode(goderive.NewArray())
	assert.ErrorIs(t, err, goderive.ErrTypeMismatch)
}

func TestInt64Key(t *testing.T) {
	k := goderive.Int64Key()
	assert.Equal(t, "-42", k.EncodeKey(-42))
	n, ok := k.DecodeKey("-42")
	assert.True(t, ok)
	assert.Equal(t, int64(-42), n)
	_, ok = k.DecodeKey("4x")
	assert.False(t, ok)
}
