package transcode

import (
	"fmt"
	"sort"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	goderive "github.com/reoring/goderive"
)

// ToProto converts v into a structpb.Value. Numbers become doubles, so
// integers beyond 2^53 lose precision.
func ToProto(v goderive.Value) (*structpb.Value, error) {
	switch v.Kind() {
	case goderive.KindNull:
		return structpb.NewNullValue(), nil
	case goderive.KindBool:
		b, _ := v.Bool()
		return structpb.NewBoolValue(b), nil
	case goderive.KindString:
		s, _ := v.Str()
		return structpb.NewStringValue(s), nil
	case goderive.KindNumber:
		text, _ := v.Number()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("transcode: number %s out of range", text)
		}
		return structpb.NewNumberValue(f), nil
	case goderive.KindArray:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, v.Len())}
		for _, it := range v.Items() {
			pv, err := ToProto(it)
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, pv)
		}
		return structpb.NewListValue(list), nil
	case goderive.KindObject:
		s := &structpb.Struct{Fields: make(map[string]*structpb.Value, v.Len())}
		for _, m := range v.Members() {
			pv, err := ToProto(m.Value)
			if err != nil {
				return nil, err
			}
			s.Fields[m.Key] = pv
		}
		return structpb.NewStructValue(s), nil
	default:
		return nil, fmt.Errorf("transcode: unknown kind %s", v.Kind())
	}
}

// FromProto converts a structpb.Value into a Value. Struct fields come out
// sorted by key.
func FromProto(pv *structpb.Value) (goderive.Value, error) {
	if pv == nil {
		return goderive.Null(), nil
	}
	switch k := pv.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return goderive.Null(), nil
	case *structpb.Value_BoolValue:
		return goderive.NewBool(k.BoolValue), nil
	case *structpb.Value_StringValue:
		return goderive.NewString(k.StringValue), nil
	case *structpb.Value_NumberValue:
		return goderive.NewFloat(k.NumberValue), nil
	case *structpb.Value_ListValue:
		vals := k.ListValue.GetValues()
		items := make([]goderive.Value, len(vals))
		for i, it := range vals {
			v, err := FromProto(it)
			if err != nil {
				return goderive.Value{}, err
			}
			items[i] = v
		}
		return goderive.NewArray(items...), nil
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		members := make([]goderive.Member, len(keys))
		for i, key := range keys {
			v, err := FromProto(fields[key])
			if err != nil {
				return goderive.Value{}, err
			}
			members[i] = goderive.Member{Key: key, Value: v}
		}
		return goderive.NewObject(members...), nil
	default:
		return goderive.Value{}, fmt.Errorf("transcode: unsupported structpb kind %T", k)
	}
}
