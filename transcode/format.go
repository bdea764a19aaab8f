package transcode

import (
	"bytes"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/jsontext"
)

// Format serializes Values.
type Format interface {
	Name() string
	Marshal(v goderive.Value) ([]byte, error)
	Unmarshal(b []byte) (goderive.Value, error)
}

// EncodeTo encodes v with enc and serializes the result with f.
func EncodeTo[T any](f Format, v T, enc goderive.Encoder[T]) ([]byte, error) {
	return f.Marshal(enc.Encode(v))
}

// DecodeFrom deserializes b with f and decodes the result with dec.
func DecodeFrom[T any](f Format, b []byte, dec goderive.Decoder[T]) (T, error) {
	v, err := f.Unmarshal(b)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// JSON is the jsontext Format. It is the only format that keeps object
// member order.
func JSON() Format { return jsonFormat{} }

type jsonFormat struct{}

func (jsonFormat) Name() string                                { return "json" }
func (jsonFormat) Marshal(v goderive.Value) ([]byte, error)    { return jsontext.Marshal(v) }
func (jsonFormat) Unmarshal(b []byte) (goderive.Value, error) { return jsontext.Parse(b) }

// CBOR is a Format using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Format = CBOR{}

// NewCBOR constructs a CBOR format.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
//
// Maps decode with string keys so objects round-trip.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (CBOR) Name() string { return "cbor" }

func (c CBOR) Marshal(v goderive.Value) ([]byte, error) {
	x, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	return c.enc.Marshal(x)
}

func (c CBOR) Unmarshal(b []byte) (goderive.Value, error) {
	var x any
	if err := c.dec.Unmarshal(b, &x); err != nil {
		return goderive.Value{}, err
	}
	return FromAny(x)
}

// Msgpack is a Format using vmihailenco/msgpack/v5 with sorted map keys.
// The zero value is ready to use.
type Msgpack struct{}

var _ Format = Msgpack{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Marshal(v goderive.Value) ([]byte, error) {
	x, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack) Unmarshal(b []byte) (goderive.Value, error) {
	var x any
	if err := msgpack.Unmarshal(b, &x); err != nil {
		return goderive.Value{}, err
	}
	return FromAny(x)
}
