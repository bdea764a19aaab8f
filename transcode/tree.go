// Package transcode moves goderive Values to and from binary formats
// (CBOR, MessagePack) and protobuf's structpb, so derived codecs can serve
// more than JSON text.
package transcode

import (
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strconv"

	goderive "github.com/reoring/goderive"
)

// ToAny converts v into plain Go values: nil, bool, string, int64, uint64,
// float64, []any and map[string]any. Numbers become the narrowest of
// int64, uint64 and float64 that holds them exactly; a number no float64
// can hold is an error.
func ToAny(v goderive.Value) (any, error) {
	switch v.Kind() {
	case goderive.KindNull:
		return nil, nil
	case goderive.KindBool:
		b, _ := v.Bool()
		return b, nil
	case goderive.KindString:
		s, _ := v.Str()
		return s, nil
	case goderive.KindNumber:
		text, _ := v.Number()
		return numberToAny(text)
	case goderive.KindArray:
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			x, err := ToAny(it)
			if err != nil {
				return nil, fmt.Errorf("/%d: %w", i, err)
			}
			out[i] = x
		}
		return out, nil
	case goderive.KindObject:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			x, err := ToAny(m.Value)
			if err != nil {
				return nil, fmt.Errorf("/%s: %w", m.Key, err)
			}
			out[m.Key] = x
		}
		return out, nil
	default:
		return nil, fmt.Errorf("transcode: unknown kind %s", v.Kind())
	}
}

func numberToAny(text string) (any, error) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, fmt.Errorf("transcode: number %s out of range", text)
	}
	return f, nil
}

// FromAny converts decoded Go values back into a Value. Map keys are
// sorted since Go maps carry no order; []byte becomes a base64 string.
func FromAny(x any) (goderive.Value, error) {
	switch t := x.(type) {
	case nil:
		return goderive.Null(), nil
	case bool:
		return goderive.NewBool(t), nil
	case string:
		return goderive.NewString(t), nil
	case []byte:
		return goderive.NewString(base64.StdEncoding.EncodeToString(t)), nil
	case int:
		return goderive.NewInt(int64(t)), nil
	case int8:
		return goderive.NewInt(int64(t)), nil
	case int16:
		return goderive.NewInt(int64(t)), nil
	case int32:
		return goderive.NewInt(int64(t)), nil
	case int64:
		return goderive.NewInt(t), nil
	case uint:
		return goderive.NewUint(uint64(t)), nil
	case uint8:
		return goderive.NewUint(uint64(t)), nil
	case uint16:
		return goderive.NewUint(uint64(t)), nil
	case uint32:
		return goderive.NewUint(uint64(t)), nil
	case uint64:
		return goderive.NewUint(t), nil
	case float32:
		return goderive.NewFloat(float64(t)), nil
	case float64:
		return goderive.NewFloat(t), nil
	case []any:
		items := make([]goderive.Value, len(t))
		for i, it := range t {
			v, err := FromAny(it)
			if err != nil {
				return goderive.Value{}, err
			}
			items[i] = v
		}
		return goderive.NewArray(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		return objectFrom(keys, func(k string) any { return t[k] })
	case map[any]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			s, ok := k.(string)
			if !ok {
				return goderive.Value{}, fmt.Errorf("transcode: non-string map key %v (%T)", k, k)
			}
			keys = append(keys, s)
		}
		return objectFrom(keys, func(k string) any { return t[k] })
	default:
		return goderive.Value{}, fmt.Errorf("transcode: unsupported type %T", x)
	}
}

func objectFrom(keys []string, get func(string) any) (goderive.Value, error) {
	sort.Strings(keys)
	members := make([]goderive.Member, len(keys))
	for i, k := range keys {
		v, err := FromAny(get(k))
		if err != nil {
			return goderive.Value{}, err
		}
		members[i] = goderive.Member{Key: k, Value: v}
	}
	return goderive.NewObject(members...), nil
}
