package rediscodec

import (
	"fmt"
	"strconv"
)

// Kind identifies a Reply variant.
type Kind uint8

const (
	KindNil Kind = iota
	KindInteger
	KindBulk
	KindStatus
	KindArray
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindBulk:
		return "bulk"
	case KindStatus:
		return "status"
	case KindArray:
		return "array"
	case KindError:
		return "error"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Reply is a value returned by the store: one of Nil, Integer, Bulk, Status,
// Array or ErrorReply. The set is closed; no type outside this package can
// implement Reply.
type Reply interface {
	Kind() Kind
	reply()
}

// Nil is the reply for an absent key.
type Nil struct{}

// Integer is an integer reply.
type Integer int64

// Bulk is a binary-safe string reply; the only variant a value decodes from.
type Bulk []byte

// Status is a simple string reply such as OK or PONG.
type Status string

// Array is a multi-bulk reply.
type Array []Reply

// ErrorReply is an error returned by the server.
type ErrorReply string

func (Nil) Kind() Kind        { return KindNil }
func (Integer) Kind() Kind    { return KindInteger }
func (Bulk) Kind() Kind       { return KindBulk }
func (Status) Kind() Kind     { return KindStatus }
func (Array) Kind() Kind      { return KindArray }
func (ErrorReply) Kind() Kind { return KindError }

func (Nil) reply()        {}
func (Integer) reply()    {}
func (Bulk) reply()       {}
func (Status) reply()     {}
func (Array) reply()      {}
func (ErrorReply) reply() {}

// Describe renders r for diagnostics. Bulk payloads are summarized by
// length only.
func Describe(r Reply) string {
	switch v := r.(type) {
	case nil:
		return "<none>"
	case Nil:
		return "nil"
	case Integer:
		return "integer(" + strconv.FormatInt(int64(v), 10) + ")"
	case Bulk:
		return "bulk(" + strconv.Itoa(len(v)) + " bytes)"
	case Status:
		return "status(" + strconv.Quote(string(v)) + ")"
	case Array:
		return "array(len=" + strconv.Itoa(len(v)) + ")"
	case ErrorReply:
		return "error(" + strconv.Quote(string(v)) + ")"
	}
	return fmt.Sprintf("%T", r)
}
