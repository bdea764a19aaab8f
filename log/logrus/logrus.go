// Package logrus adapts a *logrus.Entry to goderive.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	goderive "github.com/reoring/goderive"
)

var _ goderive.Logger = Logger{}

// Logger forwards registry events to E. Fields are copied into the entry
// only when its logger has the event's level enabled.
type Logger struct{ E *logrus.Entry }

// New returns a Logger writing through l.
func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Debug(msg string, f goderive.Fields) { l.log(logrus.DebugLevel, msg, f) }
func (l Logger) Info(msg string, f goderive.Fields)  { l.log(logrus.InfoLevel, msg, f) }
func (l Logger) Warn(msg string, f goderive.Fields)  { l.log(logrus.WarnLevel, msg, f) }
func (l Logger) Error(msg string, f goderive.Fields) { l.log(logrus.ErrorLevel, msg, f) }

func (l Logger) log(level logrus.Level, msg string, f goderive.Fields) {
	if l.E == nil || !l.E.Logger.IsLevelEnabled(level) {
		return
	}
	l.E.WithFields(logrus.Fields(f)).Log(level, msg)
}
