// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel errors, the merged *Error type carrying a stable
// failure Category, and the translation of codec failures and go-redis
// replies into that type.

// Package rediscodec bridges typed Go values and the single binary value a
// Redis key holds: values are encoded once with a codec, written as one bulk
// argument, and decoded back only from a bulk reply.
package rediscodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Category errors. Every *Error matches exactly one of these with errors.Is.
var (
	ErrEncode             = errors.New("rediscodec: value could not be encoded")
	ErrDecode             = errors.New("rediscodec: response could not be decoded")
	ErrTypeMismatch       = errors.New("rediscodec: response was of incompatible type")
	ErrUnsupportedVariant = errors.New("rediscodec: response variant not supported")
)

// Store errors
var (
	ErrMiss          = errors.New("rediscodec: key not found")
	ErrInvalidConfig = errors.New("rediscodec: invalid configuration")
)

// Category is the stable, machine-matchable class of a bridge failure.
type Category uint8

const (
	CategoryEncode Category = iota + 1
	CategoryDecode
	CategoryTypeMismatch
	CategoryUnsupportedVariant
)

// String returns the category tag. These strings are part of the public
// contract; diagnostic messages are not.
func (c Category) String() string {
	switch c {
	case CategoryEncode:
		return "Encode"
	case CategoryDecode:
		return "Decode"
	case CategoryTypeMismatch:
		return "TypeMismatch"
	case CategoryUnsupportedVariant:
		return "UnsupportedVariant"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

func (c Category) sentinel() error {
	switch c {
	case CategoryEncode:
		return ErrEncode
	case CategoryDecode:
		return ErrDecode
	case CategoryTypeMismatch:
		return ErrTypeMismatch
	case CategoryUnsupportedVariant:
		return ErrUnsupportedVariant
	}
	return nil
}

// Error is the single error type produced by the bridge.
//
// Which fields are set depends on Category:
//   - Encode, Decode: Cause (the codec's failure, verbatim)
//   - TypeMismatch: Expected, Actual and the offending Reply
//   - UnsupportedVariant: Tag naming the shape that has no rule
//
// Type and Codec name the target Go type and codec when known.
type Error struct {
	Category Category
	Expected Kind
	Actual   Kind
	Reply    Reply
	Tag      string
	Type     string
	Codec    string
	Cause    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("rediscodec: ")
	b.WriteString(e.Category.String())
	b.WriteString(": ")
	switch e.Category {
	case CategoryEncode:
		fmt.Fprintf(&b, "value of type %s not serializable", e.typeName())
		e.writeCodec(&b)
	case CategoryDecode:
		fmt.Fprintf(&b, "response not deserializable to %s", e.typeName())
		e.writeCodec(&b)
	case CategoryTypeMismatch:
		fmt.Fprintf(&b, "expected %s reply, got %s", e.Expected, e.Actual)
		if e.Reply != nil && e.Cause == nil {
			fmt.Fprintf(&b, " (response was %s)", Describe(e.Reply))
		}
		if e.Type != "" {
			fmt.Fprintf(&b, " decoding %s", e.Type)
		}
	case CategoryUnsupportedVariant:
		fmt.Fprintf(&b, "no rule for reply of type %s", e.Tag)
		if e.Type != "" {
			fmt.Fprintf(&b, " decoding %s", e.Type)
		}
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) typeName() string {
	if e.Type == "" {
		return "value"
	}
	return e.Type
}

func (e *Error) writeCodec(b *strings.Builder) {
	if e.Codec != "" {
		b.WriteString(" with ")
		b.WriteString(e.Codec)
	}
}

// Is reports whether target is the sentinel for e's category.
func (e *Error) Is(target error) bool {
	s := e.Category.sentinel()
	return s != nil && target == s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return 0, false
}

// IsNil reports whether err is a type mismatch against a nil reply, which is
// how an absent key surfaces from the bridge.
func IsNil(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Category == CategoryTypeMismatch && e.Actual == KindNil
}

// Translate maps err into the bridge's error type where it describes a reply
// the bridge cannot turn into a value. It returns nil for nil, an *Error
// unchanged, a TypeMismatch for redis.Nil and server error replies, and any
// other error (network, context) as-is.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, redis.Nil) {
		return mismatch(Nil{})
	}
	var rerr redis.Error
	if errors.As(err, &rerr) {
		e := mismatch(ErrorReply(rerr.Error()))
		e.Cause = err
		return e
	}
	return err
}

func encodeErr(typ, codecName string, cause error) *Error {
	return &Error{Category: CategoryEncode, Type: typ, Codec: codecName, Cause: cause}
}

func decodeErr(typ, codecName string, cause error) *Error {
	return &Error{Category: CategoryDecode, Type: typ, Codec: codecName, Cause: cause}
}

func mismatch(r Reply) *Error {
	return &Error{Category: CategoryTypeMismatch, Expected: KindBulk, Actual: r.Kind(), Reply: r}
}

func unsupported(tag string) *Error {
	return &Error{Category: CategoryUnsupportedVariant, Tag: tag}
}
