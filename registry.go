package goderive

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Registry memoizes derived codecs per (registered type, *Config). The
// Config is keyed by pointer identity: reuse the same *Config value to
// share derivations.
//
// The first Lookup for a key derives the codec; concurrent callers for the
// same key wait for that single derivation and observe the same codec or
// the same error. Outcomes, errors included, are kept for the lifetime of
// the Registry.
type Registry struct {
	log Logger

	mu      sync.RWMutex
	schemas map[reflect.Type]*registration
	nextID  uint64

	done  sync.Map // cacheKey -> *derived
	group singleflight.Group
}

type registration struct {
	id     uint64
	name   string
	derive func(cfg *Config) (any, error)
}

type cacheKey struct {
	typ reflect.Type
	cfg *Config
}

type derived struct {
	codec any
	err   error

	verify sync.Once
	refErr error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for derivation events.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{log: NopLogger{}, schemas: map[reflect.Type]*registration{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RegisterProduct records the descriptor of product type T.
func RegisterProduct[T any](r *Registry, d ProductDescriptor[T]) error {
	return r.register(reflect.TypeFor[T](), d.typeName, func(cfg *Config) (any, error) {
		return DeriveProduct(d, cfg)
	})
}

// RegisterSum records the descriptor of sum type T.
func RegisterSum[T any](r *Registry, d SumDescriptor[T]) error {
	return r.register(reflect.TypeFor[T](), d.typeName, func(cfg *Config) (any, error) {
		return DeriveSum(d, cfg)
	})
}

// RegisterProductFunc records a descriptor built per Config. Use it when
// field codecs come from the registry (Ref) and must follow the Config the
// product is looked up with.
func RegisterProductFunc[T any](r *Registry, build func(*Config) ProductDescriptor[T]) error {
	return r.register(reflect.TypeFor[T](), typeNameOf[T](), func(cfg *Config) (any, error) {
		return DeriveProduct(build(cfg), cfg)
	})
}

// RegisterSumFunc is RegisterProductFunc for sum types.
func RegisterSumFunc[T any](r *Registry, build func(*Config) SumDescriptor[T]) error {
	return r.register(reflect.TypeFor[T](), typeNameOf[T](), func(cfg *Config) (any, error) {
		return DeriveSum(build(cfg), cfg)
	})
}

func (r *Registry) register(typ reflect.Type, name string, derive func(*Config) (any, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[typ]; ok {
		return &DeriveError{Code: CodeAlreadyRegistered, Type: name}
	}
	r.nextID++
	r.schemas[typ] = &registration{id: r.nextID, name: name, derive: derive}
	r.log.Info("goderive: registered type", Fields{"type": name})
	return nil
}

// Lookup returns the codec of T under cfg, deriving it on first use.
// Every registry type the codec reaches through Ref is derived as well,
// and the first failure among them is returned.
func Lookup[T any](r *Registry, cfg *Config) (Codec[T], error) {
	typ := reflect.TypeFor[T]()
	d, err := r.derivedFor(typ, cfg)
	if err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}
	d.verify.Do(func() { d.refErr = r.resolveRefs(typ, cfg, d.codec) })
	if d.refErr != nil {
		return nil, d.refErr
	}
	codec, ok := d.codec.(Codec[T])
	if !ok {
		return nil, fmt.Errorf("goderive: registered codec for %s has type %T", typ, d.codec)
	}
	return codec, nil
}

// MustLookup is Lookup that panics on error.
func MustLookup[T any](r *Registry, cfg *Config) Codec[T] {
	c, err := Lookup[T](r, cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Ref returns a codec that resolves T through r on first use. It lets
// descriptors refer to types registered later, including themselves.
//
// Lookup of a type holding a Ref also derives the Ref's target and
// reports its errors. A Ref hidden behind Lazy or a function adapter is
// only resolved when first used: Decode then returns the derivation
// error and Encode panics with it.
//
// Registered types always encode to objects, so a Ref is ObjectShaped and
// may be a discriminated sum payload. Asking for its keys derives it.
func Ref[T any](r *Registry, cfg *Config) Codec[T] {
	return &refCodec[T]{r: r, cfg: cfg}
}

type refCodec[T any] struct {
	r   *Registry
	cfg *Config

	once sync.Once
	c    Codec[T]
	err  error
}

func (c *refCodec[T]) get() (Codec[T], error) {
	c.once.Do(func() { c.c, c.err = Lookup[T](c.r, c.cfg) })
	return c.c, c.err
}

func (c *refCodec[T]) Encode(v T) Value {
	codec, err := c.get()
	if err != nil {
		panic(err)
	}
	return codec.Encode(v)
}

func (c *refCodec[T]) Decode(v Value) (T, error) {
	codec, err := c.get()
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.Decode(v)
}

// ObjectKeys returns nil when T cannot be derived.
func (c *refCodec[T]) ObjectKeys() []string {
	keys, _ := c.objectKeys()
	return keys
}

func (c *refCodec[T]) objectKeys() ([]string, error) {
	codec, err := c.r.resolve(reflect.TypeFor[T](), c.cfg)
	if err != nil {
		return nil, err
	}
	if s, ok := codec.(ObjectShaped); ok {
		return s.ObjectKeys(), nil
	}
	return nil, nil
}

func (c *refCodec[T]) refs() []refTarget {
	return []refTarget{{r: c.r, typ: reflect.TypeFor[T](), cfg: c.cfg}}
}

// refTarget is a registry entry reached through Ref.
type refTarget struct {
	r   *Registry
	typ reflect.Type
	cfg *Config
}

// refHolder is implemented by codecs that may reach registry types
// through Ref.
type refHolder interface {
	refs() []refTarget
}

func refsOf(c any) []refTarget {
	if h, ok := c.(refHolder); ok {
		return h.refs()
	}
	return nil
}

// resolveRefs derives every type reachable from codec through Ref,
// breadth first. Targets are derived after the root is stored, so a type
// may refer to itself.
func (r *Registry) resolveRefs(typ reflect.Type, cfg *Config, codec any) error {
	root := refTarget{r: r, typ: typ, cfg: cfg}
	seen := map[refTarget]struct{}{root: {}}
	queue := refsOf(codec)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		c, err := t.r.resolve(t.typ, t.cfg)
		if err != nil {
			f := cfg.fields()
			f["type"] = typ.String()
			f["ref"] = t.typ.String()
			f["error"] = err.Error()
			r.log.Warn("goderive: referenced type failed to derive", f)
			return err
		}
		queue = append(queue, refsOf(c)...)
	}
	return nil
}

func (r *Registry) resolve(typ reflect.Type, cfg *Config) (any, error) {
	d, err := r.derivedFor(typ, cfg)
	if err != nil {
		return nil, err
	}
	return d.codec, d.err
}

func (r *Registry) derivedFor(typ reflect.Type, cfg *Config) (*derived, error) {
	key := cacheKey{typ: typ, cfg: cfg}
	if v, ok := r.done.Load(key); ok {
		return v.(*derived), nil
	}

	r.mu.RLock()
	reg, ok := r.schemas[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, &DeriveError{Code: CodeNotRegistered, Type: typ.String()}
	}

	v, _, _ := r.group.Do(fmt.Sprintf("%d/%p", reg.id, cfg), func() (any, error) {
		if v, ok := r.done.Load(key); ok {
			return v, nil
		}
		start := time.Now()
		c, err := reg.derive(cfg)
		d := &derived{codec: c, err: err}
		f := cfg.fields()
		f["type"] = reg.name
		f["elapsed"] = time.Since(start).String()
		if err != nil {
			f["error"] = err.Error()
			r.log.Error("goderive: derivation failed", f)
		} else {
			r.log.Debug("goderive: derived codec", f)
		}
		r.done.Store(key, d)
		return d, nil
	})
	return v.(*derived), nil
}
