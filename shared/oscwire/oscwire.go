// Package oscwire encodes and decodes the addressed-message wire format used
// by the match control protocol. It must have zero dependencies on ebiten so
// the headless controller stays headless.
//
// A packet is either a single message or a bundle. A message is an address
// string, a type tag string starting with ',' and the arguments in tag order.
// Strings are NUL terminated and padded to a multiple of four bytes; numbers
// are big-endian 32-bit values. A bundle is the string "#bundle", an 8 byte
// time tag and a sequence of size-prefixed elements, each a message or a
// nested bundle.
package oscwire

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTruncated       = errors.New("oscwire: packet truncated")
	ErrBadAddress      = errors.New("oscwire: address must start with '/'")
	ErrBadTypeTag      = errors.New("oscwire: type tag string must start with ','")
	ErrUnsupportedType = errors.New("oscwire: unsupported argument type")
	ErrBadBundle       = errors.New("oscwire: malformed bundle")
	ErrEmpty           = errors.New("oscwire: empty packet")
)

// Tag identifies the type of an argument on the wire.
type Tag byte

const (
	TagInt    Tag = 'i'
	TagFloat  Tag = 'f'
	TagString Tag = 's'
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int32"
	case TagFloat:
		return "float32"
	case TagString:
		return "string"
	}
	return fmt.Sprintf("tag(%q)", byte(t))
}

// Arg is a single typed argument. The zero value is not a valid argument;
// build one with Int, Float or String.
type Arg struct {
	tag Tag
	i   int32
	f   float32
	s   string
}

func Int(v int32) Arg     { return Arg{tag: TagInt, i: v} }
func Float(v float32) Arg { return Arg{tag: TagFloat, f: v} }
func String(v string) Arg { return Arg{tag: TagString, s: v} }

func (a Arg) Tag() Tag { return a.tag }

// AsInt returns the value of an int argument. Floats and strings report
// false; callers that want a numeric coercion use AsFloat.
func (a Arg) AsInt() (int32, bool) {
	if a.tag != TagInt {
		return 0, false
	}
	return a.i, true
}

// AsFloat converts numeric arguments to a float.
func (a Arg) AsFloat() (float32, bool) {
	switch a.tag {
	case TagFloat:
		return a.f, true
	case TagInt:
		return float32(a.i), true
	}
	return 0, false
}

func (a Arg) AsString() (string, bool) {
	if a.tag != TagString {
		return "", false
	}
	return a.s, true
}

// value is the go-osc representation of a.
func (a Arg) value() interface{} {
	switch a.tag {
	case TagInt:
		return a.i
	case TagFloat:
		return a.f
	case TagString:
		return a.s
	}
	return nil
}

func argOf(v interface{}) (Arg, error) {
	switch v := v.(type) {
	case int32:
		return Int(v), nil
	case float32:
		return Float(v), nil
	case string:
		return String(v), nil
	}
	return Arg{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func (a Arg) String() string {
	switch a.tag {
	case TagInt:
		return fmt.Sprintf("%d", a.i)
	case TagFloat:
		return fmt.Sprintf("%g", a.f)
	case TagString:
		return fmt.Sprintf("%q", a.s)
	}
	return "<invalid>"
}

// Message is one addressed message with its ordered arguments.
type Message struct {
	Address string
	Args    []Arg
}

// NewMessage builds a message from an address and arguments.
func NewMessage(address string, args ...Arg) Message {
	return Message{Address: address, Args: args}
}

// Arg returns the i-th argument, reporting false when it is absent.
func (m Message) Arg(i int) (Arg, bool) {
	if i < 0 || i >= len(m.Args) {
		return Arg{}, false
	}
	return m.Args[i], true
}

func (m Message) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Address + " [" + strings.Join(parts, ", ") + "]"
}
