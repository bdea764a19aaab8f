//go:build stdjson

package compare_test

import (
	"github.com/reoring/goderive/jsontext"
	jsonsrc "github.com/reoring/goderive/source/json"
)

func init() { _ = jsontext.UseDriver(jsonsrc.Name) }
