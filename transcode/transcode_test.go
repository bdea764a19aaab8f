package transcode_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/transcode"
)

type Order struct {
	ID       uint64
	Items    []string
	Discount float64
	Note     *string
}

func orderCodec() *goderive.ProductCodec[Order] {
	return goderive.MustDeriveProduct(goderive.Product[Order]("Order",
		goderive.Field("id", func(o *Order) *uint64 { return &o.ID }, goderive.Uint64()),
		goderive.Field("items", func(o *Order) *[]string { return &o.Items }, goderive.SliceOf(goderive.String())),
		goderive.Field("discount", func(o *Order) *float64 { return &o.Discount }, goderive.Float64()),
		goderive.Field("note", func(o *Order) **string { return &o.Note }, goderive.Nullable(goderive.String())),
	), goderive.NewConfig().WithSnakeCaseFieldNames())
}

func formats() []transcode.Format {
	return []transcode.Format{
		transcode.JSON(),
		transcode.MustCBOR(true),
		transcode.MustCBOR(false),
		transcode.Msgpack{},
		transcode.YAML(),
	}
}

func TestFormats_RoundTripDerivedValues(t *testing.T) {
	c := orderCodec()
	note := "gift"
	orders := []Order{
		{ID: 1, Items: []string{"a", "b"}, Discount: 0.25, Note: &note},
		{ID: 18446744073709551615, Items: []string{}, Discount: -3},
	}
	for _, f := range formats() {
		t.Run(f.Name(), func(t *testing.T) {
			for _, o := range orders {
				b, err := transcode.EncodeTo(f, o, c)
				require.NoError(t, err)
				got, err := transcode.DecodeFrom[Order](f, b, c)
				require.NoError(t, err)
				if diff := cmp.Diff(o, got); diff != "" {
					t.Fatalf("round trip mismatch (-want +got):\n%s\nencoded value:\n%s", diff, spew.Sdump(c.Encode(o)))
				}
			}
		})
	}
}

func TestFormats_DecodeErrorsSurface(t *testing.T) {
	c := orderCodec()
	bad := goderive.NewObject(goderive.Member{Key: "id", Value: goderive.NewString("x")})
	for _, f := range formats() {
		b, err := f.Marshal(bad)
		require.NoError(t, err)
		_, err = transcode.DecodeFrom[Order](f, b, c)
		assert.ErrorIs(t, err, goderive.ErrTypeMismatch, f.Name())
	}
}

func TestCBOR_DeterministicOutput(t *testing.T) {
	f := transcode.MustCBOR(true)
	a := goderive.NewObject(
		goderive.Member{Key: "b", Value: goderive.NewInt(1)},
		goderive.Member{Key: "a", Value: goderive.NewInt(2)},
	)
	b := goderive.NewObject(
		goderive.Member{Key: "a", Value: goderive.NewInt(2)},
		goderive.Member{Key: "b", Value: goderive.NewInt(1)},
	)
	x, err := f.Marshal(a)
	require.NoError(t, err)
	y, err := f.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestToAny_Numbers(t *testing.T) {
	x, err := transcode.ToAny(goderive.NewArray(
		goderive.NewNumber("-5"),
		goderive.NewNumber("18446744073709551615"),
		goderive.NewNumber("1.5e3"),
	))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(-5), uint64(18446744073709551615), 1500.0}, x)

	_, err = transcode.ToAny(goderive.NewNumber("1e400"))
	assert.Error(t, err)
}

func TestFromAny(t *testing.T) {
	v, err := transcode.FromAny(map[any]any{"b": int8(1), "a": []byte{1, 2}})
	require.NoError(t, err)
	want := goderive.NewObject(
		goderive.Member{Key: "a", Value: goderive.NewString("AQI=")},
		goderive.Member{Key: "b", Value: goderive.NewInt(1)},
	)
	assert.True(t, v.Equal(want))

	_, err = transcode.FromAny(map[any]any{1: "x"})
	assert.Error(t, err)
	_, err = transcode.FromAny(struct{}{})
	assert.Error(t, err)
}

func TestProto_RoundTrip(t *testing.T) {
	v := goderive.NewObject(
		goderive.Member{Key: "name", Value: goderive.NewString("x")},
		goderive.Member{Key: "tags", Value: goderive.NewArray(goderive.NewBool(true), goderive.Null())},
		goderive.Member{Key: "n", Value: goderive.NewInt(42)},
	)
	pv, err := transcode.ToProto(v)
	require.NoError(t, err)
	assert.Equal(t, 42.0, pv.GetStructValue().GetFields()["n"].GetNumberValue())

	back, err := transcode.FromProto(pv)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "name", "tags"}, back.Keys())
	n, _ := back.Get("n")
	text, _ := n.Number()
	assert.Equal(t, "42", text)

	null, err := transcode.FromProto(nil)
	require.NoError(t, err)
	assert.True(t, null.IsNull())
}

func TestYAML_KeepsOrder(t *testing.T) {
	f := transcode.YAML()
	v, err := f.Unmarshal([]byte("z: 1\na: [true, null, \"x\", 2.5]\nm: {k: v}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())

	out, err := f.Marshal(v)
	require.NoError(t, err)
	back, err := f.Unmarshal(out)
	require.NoError(t, err)
	assert.True(t, back.Equal(v), string(out))
}

func TestYAML_QuotesAmbiguousStrings(t *testing.T) {
	f := transcode.YAML()
	v := goderive.NewObject(
		goderive.Member{Key: "a", Value: goderive.NewString("true")},
		goderive.Member{Key: "b", Value: goderive.NewString("12")},
		goderive.Member{Key: "c", Value: goderive.NewString("")},
	)
	out, err := f.Marshal(v)
	require.NoError(t, err)
	back, err := f.Unmarshal(out)
	require.NoError(t, err)
	assert.True(t, back.Equal(v), string(out))
}

func TestYAML_DuplicateKey(t *testing.T) {
	_, err := transcode.YAML().Unmarshal([]byte("a: 1\nb: 2\na: 3\n"))
	var dup *transcode.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Key)
	assert.Equal(t, 3, dup.Line)
	assert.Equal(t, 1, dup.FirstLine)
}
