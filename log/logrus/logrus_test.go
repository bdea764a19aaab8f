package logrus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goderive "github.com/reoring/goderive"
	gdlogrus "github.com/reoring/goderive/log/logrus"
)

type Pair struct{ A, B int }

func TestRegistryLogsThroughLogrus(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	r := goderive.NewRegistry(goderive.WithLogger(gdlogrus.New(base)))

	require.NoError(t, goderive.RegisterProduct(r, goderive.Product[Pair]("Pair",
		goderive.Field("a", func(p *Pair) *int { return &p.A }, goderive.Int()),
		goderive.Field("b", func(p *Pair) *int { return &p.B }, goderive.Int()),
	)))
	cfg := goderive.NewConfig().WithStrictDecoding(true)
	_, err := goderive.Lookup[Pair](r, cfg)
	require.NoError(t, err)
	_, err = goderive.Lookup[Pair](r, cfg)
	require.NoError(t, err)

	var derived, registered []*logrus.Entry
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "goderive: derived codec":
			derived = append(derived, e)
		case "goderive: registered type":
			registered = append(registered, e)
		}
	}
	require.Len(t, registered, 1)
	assert.Equal(t, logrus.InfoLevel, registered[0].Level)
	require.Len(t, derived, 1)
	assert.Equal(t, logrus.DebugLevel, derived[0].Level)
	assert.Equal(t, true, derived[0].Data["strict_decoding"])
	assert.Equal(t, "Pair", derived[0].Data["type"])
}

func TestLevelGate(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.WarnLevel)
	r := goderive.NewRegistry(goderive.WithLogger(gdlogrus.New(base)))

	require.NoError(t, goderive.RegisterProduct(r, goderive.Product[Pair]("Pair",
		goderive.Field("a", func(p *Pair) *int { return &p.A }, goderive.Int()),
		goderive.Field("a", func(p *Pair) *int { return &p.B }, goderive.Int()),
	)))
	_, err := goderive.Lookup[Pair](r, nil)
	require.ErrorIs(t, err, goderive.ErrDuplicateField)

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, logrus.ErrorLevel, entries[0].Level)
	assert.Equal(t, "goderive: derivation failed", entries[0].Message)
}
