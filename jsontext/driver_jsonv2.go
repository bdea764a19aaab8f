//go:build goexperiment.jsonv2

package jsontext

import "github.com/reoring/goderive/source/jsonv2"

func init() { builtin[jsonv2.Name] = jsonv2.Driver{} }
