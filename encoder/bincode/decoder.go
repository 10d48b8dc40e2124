// Package bincode reads and writes the node's record encoding: little-endian,
// varint integers, u32 enum discriminants, u8 option tags and length-prefixed
// byte strings.
package bincode

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// varint markers
const (
	singleByteMax = 250
	u16Marker     = 251
	u32Marker     = 252
	u64Marker     = 253
	u128Marker    = 254
)

var (
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrTrailingBytes  = errors.New("trailing bytes after value")
	ErrInvalidVarint  = errors.New("invalid varint marker")
	ErrOutOfRange     = errors.New("integer out of range")
	ErrInvalidOption  = errors.New("invalid option tag")
	ErrInvalidBool    = errors.New("invalid bool value")
	ErrInvalidUTF8    = errors.New("string is not valid utf-8")
	ErrUnknownVariant = errors.New("unknown enum variant")
	ErrLengthTooLarge = errors.New("length exceeds remaining input")
)

// Decoder reads values sequentially from a byte slice. The first error sticks:
// once set, every read returns zero values and Err reports it.
type Decoder struct {
	buf []byte
	pos int
	err error
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Err returns the first error encountered, if any
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the number of bytes consumed so far
func (d *Decoder) Offset() int {
	return d.pos
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Fail records err at the current offset unless an error is already set.
func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = errors.Wrapf(err, "offset %d", d.pos)
	}
}

// Finish reports the sticky error, or ErrTrailingBytes if input remains.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.pos != len(d.buf) {
		return errors.Wrapf(ErrTrailingBytes, "%d bytes left at offset %d", len(d.buf)-d.pos, d.pos)
	}
	return nil
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.buf)-d.pos {
		d.Fail(ErrUnexpectedEOF)
		return nil
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b
}

// U8 reads a raw byte. u8 values are never varint encoded.
func (d *Decoder) U8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) varint(maxMarker byte) (lo, hi uint64) {
	marker := d.U8()
	if d.err != nil {
		return 0, 0
	}
	if marker <= singleByteMax {
		return uint64(marker), 0
	}
	if marker > maxMarker {
		if marker > u128Marker {
			d.Fail(ErrInvalidVarint)
		} else {
			d.Fail(ErrOutOfRange)
		}
		return 0, 0
	}
	switch marker {
	case u16Marker:
		if b := d.take(2); b != nil {
			return uint64(binary.LittleEndian.Uint16(b)), 0
		}
	case u32Marker:
		if b := d.take(4); b != nil {
			return uint64(binary.LittleEndian.Uint32(b)), 0
		}
	case u64Marker:
		if b := d.take(8); b != nil {
			return binary.LittleEndian.Uint64(b), 0
		}
	case u128Marker:
		if b := d.take(16); b != nil {
			return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])
		}
	}
	return 0, 0
}

func (d *Decoder) U16() uint16 {
	v, _ := d.varint(u16Marker)
	return uint16(v)
}

func (d *Decoder) U32() uint32 {
	v, _ := d.varint(u32Marker)
	if v > math.MaxUint32 {
		d.Fail(ErrOutOfRange)
		return 0
	}
	return uint32(v)
}

func (d *Decoder) U64() uint64 {
	v, _ := d.varint(u64Marker)
	return v
}

// U128 returns the high and low 64-bit halves of a u128.
func (d *Decoder) U128() (hi, lo uint64) {
	lo, hi = d.varint(u128Marker)
	return hi, lo
}

func (d *Decoder) Bool() bool {
	switch d.U8() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(ErrInvalidBool)
		return false
	}
}

// Option reads an option tag and reports whether a value follows.
func (d *Decoder) Option() bool {
	switch tag := d.U8(); {
	case d.err != nil:
		return false
	case tag == 0:
		return false
	case tag == 1:
		return true
	default:
		d.Fail(ErrInvalidOption)
		return false
	}
}

// Variant reads an enum discriminant.
func (d *Decoder) Variant() uint32 {
	return d.U32()
}

// UnknownVariant records an unknown discriminant for the named enum.
func (d *Decoder) UnknownVariant(enum string, idx uint32) {
	d.Fail(errors.Wrapf(ErrUnknownVariant, "%s variant %d", enum, idx))
}

// Len reads a sequence length. Lengths larger than the remaining input are
// rejected up front so corrupt records cannot trigger huge allocations.
func (d *Decoder) Len() int {
	n := d.U64()
	if d.err != nil {
		return 0
	}
	if n > uint64(d.Remaining()) {
		d.Fail(ErrLengthTooLarge)
		return 0
	}
	return int(n)
}

// Bytes reads a length-prefixed byte string. The result aliases the input.
func (d *Decoder) Bytes() []byte {
	n := d.Len()
	return d.take(n)
}

// Fixed reads exactly n raw bytes.
func (d *Decoder) Fixed(n int) []byte {
	return d.take(n)
}

func (d *Decoder) Text() string {
	b := d.Bytes()
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.Fail(ErrInvalidUTF8)
		return ""
	}
	return string(b)
}

// BytesSlice reads a sequence of length-prefixed byte strings.
func (d *Decoder) BytesSlice() [][]byte {
	n := d.Len()
	if d.err != nil {
		return nil
	}
	out := make([][]byte, 0, n)
	for range n {
		b := d.Bytes()
		if d.err != nil {
			return nil
		}
		out = append(out, b)
	}
	return out
}

// Seq reads a length-prefixed sequence, calling fn once per element.
func Seq[T any](d *Decoder, fn func(*Decoder) T) []T {
	n := d.Len()
	if d.err != nil {
		return nil
	}
	out := make([]T, 0, n)
	for range n {
		v := fn(d)
		if d.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// Unmarshal decodes a single value from b with fn and rejects trailing bytes.
func Unmarshal[T any](b []byte, fn func(*Decoder) T) (T, error) {
	d := NewDecoder(b)
	v := fn(d)
	if err := d.Finish(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
