package goderive

import (
	"sort"
	"strings"

	"github.com/stoewer/go-strcase"
)

// NameTransform maps a field name or variant tag to its JSON spelling.
type NameTransform func(string) string

// Identity leaves names unchanged.
func Identity(s string) string { return s }

// SnakeCase maps firstName to first_name.
func SnakeCase(s string) string { return strcase.SnakeCase(s) }

// KebabCase maps firstName to first-name.
func KebabCase(s string) string { return strcase.KebabCase(s) }

// ScreamingSnakeCase maps firstName to FIRST_NAME.
func ScreamingSnakeCase(s string) string { return strcase.UpperSnakeCase(s) }

// CamelCase maps FirstName to firstName.
func CamelCase(s string) string { return strcase.LowerCamelCase(s) }

// PascalCase maps firstName to FirstName.
func PascalCase(s string) string { return strcase.UpperCamelCase(s) }

// LowerCase maps Dog to dog.
func LowerCase(s string) string { return strings.ToLower(s) }

// UpperCase maps Dog to DOG.
func UpperCase(s string) string { return strings.ToUpper(s) }

var presets = map[string]NameTransform{
	"identity":             Identity,
	"snake_case":           SnakeCase,
	"kebab-case":           KebabCase,
	"SCREAMING_SNAKE_CASE": ScreamingSnakeCase,
	"camelCase":            CamelCase,
	"PascalCase":           PascalCase,
	"lowercase":            LowerCase,
	"UPPERCASE":            UpperCase,
}

// NamingPreset looks up a built-in transform by name ("snake_case",
// "kebab-case", "lowercase", ...). The empty name is Identity.
func NamingPreset(name string) (NameTransform, bool) {
	if name == "" {
		return Identity, true
	}
	t, ok := presets[name]
	return t, ok
}

// NamingPresets lists the names accepted by NamingPreset.
func NamingPresets() []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RenameMap returns a transform that looks names up in m and falls back
// to fallback (Identity when nil) for names not in m.
func RenameMap(m map[string]string, fallback NameTransform) NameTransform {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	if fallback == nil {
		fallback = Identity
	}
	return func(s string) string {
		if r, ok := cp[s]; ok {
			return r
		}
		return fallback(s)
	}
}
