// Package zap adapts a *zap.Logger to goderive.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	goderive "github.com/reoring/goderive"
)

var _ goderive.Logger = Logger{}

// Logger forwards registry events to L.
type Logger struct{ L *zap.Logger }

func (z Logger) Debug(msg string, f goderive.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f goderive.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f goderive.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f goderive.Fields) { z.L.Error(msg, zf(f)...) }

// zf renders fields in key order so log lines are stable.
func zf(f goderive.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
