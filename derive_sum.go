package goderive

import (
	"fmt"
	"sort"
)

// SumCodec is the codec derived from a SumDescriptor and a Config. It is
// immutable and safe for concurrent use.
type SumCodec[T any] struct {
	typeName      string
	variants      []sumVariant[T]
	byTag         map[string]int
	discriminator string
	flat          bool
}

type sumVariant[T any] struct {
	tag  string
	desc VariantDescriptor[T]
}

var _ ObjectShaped = (*SumCodec[any])(nil)

// DeriveSum builds the codec for d under cfg. All structural problems are
// reported here, never while encoding or decoding:
//   - two variants whose transformed tags collide (duplicate_tag);
//   - with a discriminator, a payload codec that is not ObjectShaped
//     (invalid_discriminator_payload) or that already emits the
//     discriminator key (discriminator_field_conflict).
func DeriveSum[T any](d SumDescriptor[T], cfg *Config) (*SumCodec[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, withType(err, d.typeName)
	}
	c := &SumCodec[T]{
		typeName: d.typeName,
		variants: make([]sumVariant[T], 0, len(d.variants)),
		byTag:    make(map[string]int, len(d.variants)),
	}
	c.discriminator, c.flat = cfg.Discriminator()

	for i, vd := range d.variants {
		tag := vd.key(cfg)
		if prev, dup := c.byTag[tag]; dup {
			return nil, &DeriveError{
				Code:     CodeDuplicateTag,
				Type:     d.typeName,
				Tag:      tag,
				Variants: []string{d.variants[prev].tag, vd.tag},
				Message:  fmt.Sprintf("variants %q and %q both map to tag %q", d.variants[prev].tag, vd.tag, tag),
			}
		}
		c.byTag[tag] = i
		c.variants = append(c.variants, sumVariant[T]{tag: tag, desc: vd})
	}

	if c.flat {
		for _, v := range c.variants {
			if v.desc.shape == nil {
				return nil, &DeriveError{
					Code:    CodeInvalidDiscriminatorPayload,
					Type:    d.typeName,
					Tag:     v.tag,
					Message: fmt.Sprintf("payload of variant %q does not encode to an object", v.desc.tag),
				}
			}
			keys, err := shapeKeys(v.desc.shape)
			if err != nil {
				return nil, err
			}
			for _, k := range keys {
				if k == c.discriminator {
					return nil, &DeriveError{
						Code:    CodeDiscriminatorFieldConflict,
						Type:    d.typeName,
						Tag:     v.tag,
						Field:   k,
						Message: fmt.Sprintf("payload of variant %q already has field %q", v.desc.tag, k),
					}
				}
			}
		}
	}
	return c, nil
}

// shapeKeys lists the keys of s, deriving it first when s is a Ref.
func shapeKeys(s ObjectShaped) ([]string, error) {
	if r, ok := s.(interface{ objectKeys() ([]string, error) }); ok {
		return r.objectKeys()
	}
	return s.ObjectKeys(), nil
}

// MustDeriveSum is DeriveSum that panics on error.
func MustDeriveSum[T any](d SumDescriptor[T], cfg *Config) *SumCodec[T] {
	c, err := DeriveSum(d, cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// TypeName returns the name of the derived type.
func (c *SumCodec[T]) TypeName() string { return c.typeName }

// Tags lists the transformed tags in descriptor order.
func (c *SumCodec[T]) Tags() []string {
	out := make([]string, len(c.variants))
	for i, v := range c.variants {
		out[i] = v.tag
	}
	return out
}

// ObjectKeys lists every key an encoded value may carry: the tags in
// wrapper mode, or the discriminator plus all payload keys in flat mode.
func (c *SumCodec[T]) ObjectKeys() []string {
	if !c.flat {
		return c.Tags()
	}
	seen := map[string]struct{}{c.discriminator: {}}
	for _, v := range c.variants {
		for _, k := range v.desc.shape.ObjectKeys() {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *SumCodec[T]) refs() []refTarget {
	var out []refTarget
	for _, v := range c.variants {
		out = append(out, refsOf(v.desc.payload)...)
	}
	return out
}

// Encode selects the first variant holding v. A value no variant holds,
// such as a nil interface, encodes as null.
func (c *SumCodec[T]) Encode(v T) Value {
	for _, vr := range c.variants {
		payload, ok := vr.desc.project(v)
		if !ok {
			continue
		}
		if !c.flat {
			return Value{kind: KindObject, members: []Member{{Key: vr.tag, Value: payload}}}
		}
		members := make([]Member, 0, payload.Len()+1)
		members = append(members, Member{Key: c.discriminator, Value: NewString(vr.tag)})
		members = append(members, payload.Members()...)
		return Value{kind: KindObject, members: members}
	}
	return Null()
}

// Decode reads a wrapper object or, with a discriminator, a flat object.
// Tags match exactly (case-sensitive).
func (c *SumCodec[T]) Decode(v Value) (T, error) {
	var zero T
	if v.Kind() != KindObject {
		return zero, TypeMismatch("object", v.Kind())
	}
	if c.flat {
		return c.decodeFlat(v)
	}
	if v.Len() != 1 {
		return zero, MalformedSumWrapper()
	}
	m := v.Members()[0]
	i, ok := c.byTag[m.Key]
	if !ok {
		return zero, UnknownConstructor(m.Key)
	}
	out, err := c.variants[i].desc.decode(m.Value)
	if err != nil {
		return zero, withSegment(err, Key(m.Key))
	}
	return out, nil
}

func (c *SumCodec[T]) decodeFlat(v Value) (T, error) {
	var zero T
	raw, ok := v.Get(c.discriminator)
	if !ok {
		return zero, MissingField(c.discriminator)
	}
	tag, ok := raw.Str()
	if !ok {
		return zero, TypeMismatch("string", raw.Kind()).at(Key(c.discriminator))
	}
	i, ok := c.byTag[tag]
	if !ok {
		return zero, UnknownConstructor(tag).at(Key(c.discriminator))
	}
	out, err := c.variants[i].desc.decode(v.Without(c.discriminator))
	if err != nil {
		return zero, asDecodeError(err)
	}
	return out, nil
}
