package compare_test

import (
	"encoding/json"
	"testing"

	sonic "github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"

	"github.com/reoring/goderive/jsontext"
)

// ---- Small object: bytes -> Person ----

func Benchmark_Decode_stdlib_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p Person
		if err := json.Unmarshal(data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_gojson_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p Person
		if err := gojson.Unmarshal(data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_jsoniter_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var ji = jsoniter.ConfigCompatibleWithStandardLibrary
	for i := 0; i < b.N; i++ {
		var p Person
		if err := ji.Unmarshal(data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_sonic_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p Person
		if err := sonic.Unmarshal(data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

// fastjson has no struct binding; fields are read by hand.
func Benchmark_Decode_fastjson_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var parser fastjson.Parser
	for i := 0; i < b.N; i++ {
		v, err := parser.ParseBytes(data)
		if err != nil {
			b.Fatal(err)
		}
		_ = fastjsonPerson(v)
	}
}

func Benchmark_Decode_goderive_Small(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsontext.Decode[Person](data, personCodec); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_goderive_Small_Strict(b *testing.B) {
	data := smallPersonJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsontext.Decode[Person](data, strictPersons); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Huge array: bytes -> []Person, unknown members ignored ----

func Benchmark_Decode_stdlib_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v []Person
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_gojson_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v []Person
		if err := gojson.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_jsoniter_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var ji = jsoniter.ConfigCompatibleWithStandardLibrary
	for i := 0; i < b.N; i++ {
		var v []Person
		if err := ji.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_sonic_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v []Person
		if err := sonic.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_fastjson_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var parser fastjson.Parser
	for i := 0; i < b.N; i++ {
		v, err := parser.ParseBytes(data)
		if err != nil {
			b.Fatal(err)
		}
		items := v.GetArray()
		out := make([]Person, len(items))
		for j, it := range items {
			out[j] = fastjsonPerson(it)
		}
	}
}

func Benchmark_Decode_goderive_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsontext.Decode[[]Person](data, personsCodec); err != nil {
			b.Fatal(err)
		}
	}
}

func fastjsonPerson(v *fastjson.Value) Person {
	return Person{
		ID:     string(v.GetStringBytes("id")),
		Name:   string(v.GetStringBytes("name")),
		Age:    v.GetInt("age"),
		Active: v.GetBool("active"),
		Meta:   Meta{Score: v.GetInt("meta", "score")},
	}
}
