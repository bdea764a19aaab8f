// Package settings loads a goderive.Config from YAML.
//
// Example document:
//
//	fieldNaming: snake_case
//	constructorNaming: lowercase
//	constructorRenames:
//	  HTTPError: http_error
//	useDefaults: true
//	discriminator: type
//	strictDecoding: true
//
// Naming values are the preset names of goderive.NamingPreset. Unknown keys
// are rejected.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	goderive "github.com/reoring/goderive"
)

// File mirrors the YAML document.
type File struct {
	FieldNaming        string            `yaml:"fieldNaming"`
	ConstructorNaming  string            `yaml:"constructorNaming"`
	FieldRenames       map[string]string `yaml:"fieldRenames"`
	ConstructorRenames map[string]string `yaml:"constructorRenames"`
	UseDefaults        bool              `yaml:"useDefaults"`
	// Discriminator selects flat sum encoding when set; an explicit empty
	// string is invalid.
	Discriminator  *string `yaml:"discriminator"`
	StrictDecoding bool    `yaml:"strictDecoding"`
}

// Parse decodes a single YAML document. An empty document yields the zero
// File, which maps to the default Config.
func Parse(data []byte) (*File, error) {
	return Load(bytes.NewReader(data))
}

// Load is Parse over a stream.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return Parse(data)
}

// Config builds the configuration described by f. Renames apply before
// the naming preset.
func (f *File) Config() (*goderive.Config, error) {
	fields, err := transform("fieldNaming", f.FieldNaming, f.FieldRenames)
	if err != nil {
		return nil, err
	}
	ctors, err := transform("constructorNaming", f.ConstructorNaming, f.ConstructorRenames)
	if err != nil {
		return nil, err
	}
	cfg := goderive.NewConfig().
		WithFieldNames(fields).
		WithConstructorNames(ctors).
		WithUseDefaults(f.UseDefaults).
		WithStrictDecoding(f.StrictDecoding)
	if f.Discriminator != nil {
		cfg = cfg.WithDiscriminator(*f.Discriminator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func transform(key, preset string, renames map[string]string) (goderive.NameTransform, error) {
	base, ok := goderive.NamingPreset(preset)
	if !ok {
		return nil, fmt.Errorf("settings: %s: unknown naming %q (want one of %v)", key, preset, goderive.NamingPresets())
	}
	if len(renames) == 0 {
		return base, nil
	}
	return goderive.RenameMap(renames, base), nil
}
