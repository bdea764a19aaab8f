package zap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	goderive "github.com/reoring/goderive"
	gdzap "github.com/reoring/goderive/log/zap"
)

type Pair struct{ A, B int }

func TestRegistryLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := goderive.NewRegistry(goderive.WithLogger(gdzap.Logger{L: zap.New(core)}))

	require.NoError(t, goderive.RegisterProduct(r, goderive.Product[Pair]("Pair",
		goderive.Field("a", func(p *Pair) *int { return &p.A }, goderive.Int()),
		goderive.Field("b", func(p *Pair) *int { return &p.B }, goderive.Int()),
	)))
	_, err := goderive.Lookup[Pair](r, goderive.NewConfig().WithFieldNames(func(string) string { return "same" }))
	require.Error(t, err)

	failed := logs.FilterMessage("goderive: derivation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	ctx := failed[0].ContextMap()
	assert.Equal(t, "Pair", ctx["type"])
	assert.Contains(t, ctx["error"], "duplicate_field")

	assert.Equal(t, 1, logs.FilterMessage("goderive: registered type").Len())
}
