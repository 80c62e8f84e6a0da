package oscwire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hypebeast/go-osc/osc"
)

const (
	bundleTag      = "#bundle"
	timeTagSize    = 8
	maxBundleDepth = 8
)

// Decode parses a raw packet into its messages, flattening bundles in element
// order. Any malformed element rejects the whole packet: on error the result
// is nil, never a partial list.
func Decode(packet []byte) ([]Message, error) {
	if len(packet) == 0 {
		return nil, ErrEmpty
	}
	var out []Message
	if err := decodeElement(packet, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeElement(b []byte, depth int, out *[]Message) error {
	if len(b) == 0 {
		return ErrTruncated
	}
	if b[0] == '#' {
		return decodeBundle(b, depth, out)
	}
	msg, err := decodeMessage(b)
	if err != nil {
		return err
	}
	*out = append(*out, msg)
	return nil
}

func decodeBundle(b []byte, depth int, out *[]Message) error {
	if depth >= maxBundleDepth {
		return fmt.Errorf("%w: nested deeper than %d", ErrBadBundle, maxBundleDepth)
	}
	r := reader{buf: b}
	tag, err := r.str()
	if err != nil {
		return err
	}
	if tag != bundleTag {
		return fmt.Errorf("%w: unexpected header %q", ErrBadBundle, tag)
	}
	if _, err := r.take(timeTagSize); err != nil {
		return err
	}
	for r.remaining() > 0 {
		size, err := r.int32()
		if err != nil {
			return err
		}
		if size <= 0 || size%4 != 0 {
			return fmt.Errorf("%w: element size %d", ErrBadBundle, size)
		}
		elem, err := r.take(int(size))
		if err != nil {
			return err
		}
		if err := decodeElement(elem, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// decodeMessage checks the framing of a single message and hands the body to
// go-osc. go-osc accepts more argument types than the control protocol and
// stops reading after the last argument, so both are checked here.
func decodeMessage(b []byte) (Message, error) {
	r := reader{buf: b}
	addr, err := r.str()
	if err != nil {
		return Message{}, err
	}
	if len(addr) == 0 || addr[0] != '/' {
		return Message{}, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}

	// Older senders may omit the type tag string entirely when there are no
	// arguments.
	if r.remaining() == 0 {
		return Message{Address: addr}, nil
	}
	tags, err := r.str()
	if err != nil {
		return Message{}, err
	}
	if len(tags) == 0 || tags[0] != ',' {
		return Message{}, fmt.Errorf("%w: %q", ErrBadTypeTag, tags)
	}
	for _, t := range []byte(tags[1:]) {
		switch Tag(t) {
		case TagInt, TagFloat, TagString:
		default:
			return Message{}, fmt.Errorf("%w: %s", ErrUnsupportedType, Tag(t))
		}
	}

	p, err := osc.ParsePacket(string(b))
	if err != nil {
		return Message{}, fmt.Errorf("%w: %s: %v", ErrTruncated, addr, err)
	}
	om, ok := p.(*osc.Message)
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}

	msg := Message{Address: om.Address}
	for _, v := range om.Arguments {
		a, err := argOf(v)
		if err != nil {
			return Message{}, err
		}
		msg.Args = append(msg.Args, a)
	}
	if n := len(Encode(msg)); n != len(b) {
		return Message{}, fmt.Errorf("%w: %s is %d bytes, arguments cover %d", ErrTruncated, addr, len(b), n)
	}
	return msg, nil
}

// Encode serialises a single message. It has no side effects and cannot fail
// for arguments built with Int, Float or String.
func Encode(msg Message) []byte {
	args := make([]interface{}, len(msg.Args))
	for i, a := range msg.Args {
		args[i] = a.value()
	}
	b, err := osc.NewMessage(msg.Address, args...).MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("oscwire: encode %s: %v", msg.Address, err))
	}
	return b
}

// EncodeBundle wraps messages into a single bundle with an "immediately" time
// tag.
func EncodeBundle(msgs ...Message) []byte {
	var buf bytes.Buffer
	putString(&buf, bundleTag)
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 1})

	var size [4]byte
	for _, m := range msgs {
		elem := Encode(m)
		binary.BigEndian.PutUint32(size[:], uint32(len(elem)))
		buf.Write(size[:])
		buf.Write(elem)
	}
	return buf.Bytes()
}

func putString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

// padded rounds n up to the next multiple of four.
func padded(n int) int {
	return (n + 3) &^ 3
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) int32() (int32, error) {
	v, err := r.uint32()
	return int32(v), err
}

func (r *reader) str() (string, error) {
	end := bytes.IndexByte(r.buf[r.pos:], 0)
	if end < 0 {
		return "", ErrTruncated
	}
	b, err := r.take(padded(end + 1))
	if err != nil {
		return "", err
	}
	return string(b[:end]), nil
}
