package jsontext

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	goderive "github.com/reoring/goderive"
	eng "github.com/reoring/goderive/internal/engine"
)

// DefaultMaxDepth bounds nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 1000

type options struct {
	driver   Driver
	maxDepth int
	maxBytes int64
}

// Option configures parsing.
type Option func(*options)

// WithMaxDepth bounds container nesting; n <= 0 removes the bound.
func WithMaxDepth(n int) Option { return func(o *options) { o.maxDepth = n } }

// WithMaxBytes bounds the consumed input. ParseReader stops reading once
// the bound is passed, whichever driver is in use.
func WithMaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

// WithDriver overrides the global driver for one call.
func WithDriver(d Driver) Option {
	return func(o *options) {
		if d != nil {
			o.driver = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, fn := range opts {
		fn(&o)
	}
	if o.driver == nil {
		o.driver = CurrentDriver()
	}
	if o.maxDepth < 0 {
		o.maxDepth = 0
	}
	return o
}

// Parse reads one JSON value from data. Duplicate object keys and data
// after the value are rejected with a *SyntaxError.
func Parse(data []byte, opts ...Option) (goderive.Value, error) {
	return ParseReader(bytes.NewReader(data), opts...)
}

// ParseReader is Parse over a stream. The reader is consumed up to the end
// of input.
func ParseReader(r io.Reader, opts ...Option) (goderive.Value, error) {
	o := newOptions(opts)
	var capped *capReader
	if o.maxBytes > 0 {
		capped = &capReader{r: r, left: o.maxBytes}
		r = capped
	}
	src := eng.Enforce(o.driver.NewReader(r), eng.EnforceOptions{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes})
	v, err := eng.BuildValue(src)
	if capped != nil && capped.over {
		return goderive.Value{}, &SyntaxError{Code: "max_bytes", Path: "/", Offset: o.maxBytes,
			Message: "max bytes " + strconv.FormatInt(o.maxBytes, 10) + " exceeded", Err: errInputTooLarge}
	}
	return v, err
}

var errInputTooLarge = errors.New("jsontext: input exceeds max bytes")

// capReader passes through at most left bytes. Reading past the bound
// fails with errInputTooLarge; input of exactly left bytes still ends in
// io.EOF.
type capReader struct {
	r    io.Reader
	left int64
	over bool
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.over {
		return 0, errInputTooLarge
	}
	if c.left <= 0 {
		var one [1]byte
		n, err := c.r.Read(one[:])
		if n > 0 {
			c.over = true
			return 0, errInputTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > c.left {
		p = p[:c.left]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	return n, err
}
