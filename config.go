package goderive

import "strconv"

// Config holds derivation policy. It is immutable: every With* method
// returns a new *Config and leaves the receiver untouched, so one Config
// can be shared by any number of derivations and goroutines.
//
// A nil *Config behaves like NewConfig(): identity names, no defaults,
// wrapper-object sums and lenient decoding.
type Config struct {
	fieldNames       NameTransform
	constructorNames NameTransform
	useDefaults      bool
	discriminator    string
	hasDiscriminator bool
	strict           bool
}

// NewConfig returns the default configuration.
func NewConfig() *Config { return &Config{} }

func (c *Config) clone() *Config {
	if c == nil {
		return &Config{}
	}
	cp := *c
	return &cp
}

// WithFieldNames sets the transform applied to every field name.
func (c *Config) WithFieldNames(t NameTransform) *Config {
	cp := c.clone()
	cp.fieldNames = t
	return cp
}

// WithSnakeCaseFieldNames is WithFieldNames(SnakeCase).
func (c *Config) WithSnakeCaseFieldNames() *Config { return c.WithFieldNames(SnakeCase) }

// WithKebabCaseFieldNames is WithFieldNames(KebabCase).
func (c *Config) WithKebabCaseFieldNames() *Config { return c.WithFieldNames(KebabCase) }

// WithConstructorNames sets the transform applied to every variant tag.
func (c *Config) WithConstructorNames(t NameTransform) *Config {
	cp := c.clone()
	cp.constructorNames = t
	return cp
}

// WithSnakeCaseConstructorNames is WithConstructorNames(SnakeCase).
func (c *Config) WithSnakeCaseConstructorNames() *Config {
	return c.WithConstructorNames(SnakeCase)
}

// WithLowerCaseConstructorNames is WithConstructorNames(LowerCase).
func (c *Config) WithLowerCaseConstructorNames() *Config {
	return c.WithConstructorNames(LowerCase)
}

// WithUseDefaults controls whether missing fields fall back to their
// declared default.
func (c *Config) WithUseDefaults(on bool) *Config {
	cp := c.clone()
	cp.useDefaults = on
	return cp
}

// WithDiscriminator encodes sum types as flat objects carrying the tag in
// field.
func (c *Config) WithDiscriminator(field string) *Config {
	cp := c.clone()
	cp.discriminator = field
	cp.hasDiscriminator = true
	return cp
}

// WithoutDiscriminator encodes sum types as single-key wrapper objects.
func (c *Config) WithoutDiscriminator() *Config {
	cp := c.clone()
	cp.discriminator = ""
	cp.hasDiscriminator = false
	return cp
}

// WithStrictDecoding controls whether unknown object keys fail decoding.
func (c *Config) WithStrictDecoding(on bool) *Config {
	cp := c.clone()
	cp.strict = on
	return cp
}

// FieldName applies the field transform.
func (c *Config) FieldName(name string) string {
	if c == nil || c.fieldNames == nil {
		return name
	}
	return c.fieldNames(name)
}

// ConstructorName applies the constructor transform.
func (c *Config) ConstructorName(tag string) string {
	if c == nil || c.constructorNames == nil {
		return tag
	}
	return c.constructorNames(tag)
}

// UseDefaults reports whether declared defaults fill missing fields.
func (c *Config) UseDefaults() bool { return c != nil && c.useDefaults }

// Discriminator returns the discriminator field, if any.
func (c *Config) Discriminator() (string, bool) {
	if c == nil || !c.hasDiscriminator {
		return "", false
	}
	return c.discriminator, true
}

// StrictDecoding reports whether unknown keys are rejected.
func (c *Config) StrictDecoding() bool { return c != nil && c.strict }

// Validate checks the configuration itself. Derivation calls it first.
func (c *Config) Validate() error {
	if f, ok := c.Discriminator(); ok && f == "" {
		return &DeriveError{Code: CodeInvalidConfig, Message: "discriminator field name is empty"}
	}
	return nil
}

// fields renders the options for log lines.
func (c *Config) fields() Fields {
	f := Fields{
		"use_defaults":    c.UseDefaults(),
		"strict_decoding": c.StrictDecoding(),
	}
	if d, ok := c.Discriminator(); ok {
		f["discriminator"] = strconv.Quote(d)
	}
	return f
}
