package compare_test

import (
	"testing"

	"github.com/reoring/goderive/jsontext"
	"github.com/reoring/goderive/source/gojson"
	jsonsrc "github.com/reoring/goderive/source/json"
)

// Baselines for the jscan and jstream scans: goderive always builds the
// full Value tree, with duplicate-key and depth checks on.

func benchScanHugeArray(b *testing.B, d jsontext.Driver) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := jsontext.Parse(data, jsontext.WithDriver(d))
		if err != nil {
			b.Fatal(err)
		}
		if v.Len() != cmpHugeN {
			b.Fatalf("got %d elements", v.Len())
		}
	}
}

func Benchmark_Scan_goderive_HugeArray(b *testing.B) { benchScanHugeArray(b, gojson.Driver{}) }

func Benchmark_Scan_goderive_stdjson_HugeArray(b *testing.B) {
	benchScanHugeArray(b, jsonsrc.Driver{})
}
