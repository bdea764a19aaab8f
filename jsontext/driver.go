package jsontext

import (
	"fmt"
	"io"
	"sync"

	eng "github.com/reoring/goderive/internal/engine"
	"github.com/reoring/goderive/source/gojson"
	jsonsrc "github.com/reoring/goderive/source/json"
)

// Exported aliases so custom drivers can produce tokens without importing
// internal packages.
type (
	Token       = eng.Token
	TokenKind   = eng.Kind
	TokenSource = eng.TokenSource
	SyntaxError = eng.SyntaxError
)

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Driver turns JSON input into tokens via a pluggable SPI. The default is
// backed by goccy/go-json and may be swapped with SetDriver or UseDriver.
type Driver interface {
	NewReader(r io.Reader) TokenSource
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = gojson.Driver{}

	builtin = map[string]Driver{
		gojson.Name:  gojson.Driver{},
		jsonsrc.Name: jsonsrc.Driver{},
	}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDriver selects a built-in driver by name: "go-json" or "encoding/json".
func UseDriver(name string) error {
	d, ok := builtin[name]
	if !ok {
		return fmt.Errorf("jsontext: unknown driver %q", name)
	}
	SetDriver(d)
	return nil
}

// CurrentDriver returns the driver used when no WithDriver option is given.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}
