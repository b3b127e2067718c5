// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// bridge.go — the typed conversion between T and the single bulk value a
// Redis key holds: codec invocation on both paths, the bulk-only variant
// check on the read path, and error categorization.

package rediscodec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AndrewDonelson/rediscodec/internal/codec"
	"github.com/redis/go-redis/v9"
)

// CodecProvider lets a type choose the codec its values are stored with.
// RedisCodec is called on the zero value of the type and must not read its
// receiver.
type CodecProvider interface {
	RedisCodec() Codec
}

// Validator is implemented by types that restrict which decoded values are
// legal, such as enums with a fixed set of tags. A Validate failure makes the
// decode fail.
type Validator interface {
	Validate() error
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	codec Codec
}

// WithCodec overrides the codec for a Bridge.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// Bridge converts between values of T and Redis values. It holds no mutable
// state and is safe for concurrent use.
type Bridge[T any] struct {
	codec    Codec
	typeName string
}

// New returns a Bridge for T. The codec is, in order of preference, the one
// given with WithCodec, the one T names through CodecProvider, or MsgPack.
func New[T any](opts ...Option) *Bridge[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := o.codec
	if c == nil {
		c = codecFor[T]()
	}
	return &Bridge[T]{codec: c, typeName: typeName[T]()}
}

func codecFor[T any]() Codec {
	var zero T
	if p, ok := any(zero).(CodecProvider); ok {
		return p.RedisCodec()
	}
	if p, ok := any(&zero).(CodecProvider); ok {
		return p.RedisCodec()
	}
	return codec.Default
}

func typeName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}

// Codec returns the codec b encodes with.
func (b *Bridge[T]) Codec() Codec { return b.codec }

// TypeName returns the Go type name used in diagnostics.
func (b *Bridge[T]) TypeName() string { return b.typeName }

// Encode serializes v. A codec failure is returned as an Encode *Error.
func (b *Bridge[T]) Encode(v T) ([]byte, error) {
	data, err := b.codec.Marshal(v)
	if err != nil {
		return nil, encodeErr(b.typeName, b.codec.Name(), err)
	}
	return data, nil
}

// Decode deserializes data into a new T. Either the whole payload decodes
// into a valid T or a Decode *Error is returned along with the zero T.
func (b *Bridge[T]) Decode(data []byte) (T, error) {
	var out, zero T
	if err := b.codec.Unmarshal(data, &out); err != nil {
		return zero, decodeErr(b.typeName, b.codec.Name(), err)
	}
	if err := validate(&out); err != nil {
		return zero, decodeErr(b.typeName, b.codec.Name(), err)
	}
	return out, nil
}

// validate runs T's Validator, if any. A nil pointer is the encoding of a
// nil value and has nothing to check.
func validate[T any](p *T) error {
	if rv := reflect.ValueOf(any(*p)); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if v, ok := any(*p).(Validator); ok {
		return v.Validate()
	}
	if v, ok := any(p).(Validator); ok {
		return v.Validate()
	}
	return nil
}

// ToStoreArgs encodes v as exactly one bulk argument for a store command.
func (b *Bridge[T]) ToStoreArgs(v T) ([]any, error) {
	data, err := b.Encode(v)
	if err != nil {
		return nil, err
	}
	return []any{data}, nil
}

// FromStoreValue decodes r into a T. Only Bulk is accepted; every other
// variant, Nil included, fails with a TypeMismatch so that an absent key is
// never confused with an empty or corrupt payload. Bulk payloads go to the
// codec as-is, even when empty.
func (b *Bridge[T]) FromStoreValue(r Reply) (T, error) {
	var zero T
	switch v := r.(type) {
	case Bulk:
		return b.Decode(v)
	case Nil, Integer, Status, Array, ErrorReply:
		e := mismatch(v)
		e.Type = b.typeName
		return zero, e
	}
	e := unsupported(fmt.Sprintf("%T", r))
	e.Type = b.typeName
	return zero, e
}

// FromCmd decodes the reply of an executed go-redis command. Errors that do
// not come from the reply itself (network, context) are returned unchanged.
func (b *Bridge[T]) FromCmd(cmd redis.Cmder) (T, error) {
	r, err := ReplyFromCmd(cmd)
	if err != nil {
		var zero T
		if e, ok := err.(*Error); ok {
			e.Type = b.typeName
		}
		return zero, err
	}
	return b.FromStoreValue(r)
}
