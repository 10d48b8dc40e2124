package bincode

import (
	"encoding/binary"
)

// Encoder produces the same encoding the Decoder reads. It is used to build
// store fixtures.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded output
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) U8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) varint(hi, lo uint64) {
	switch {
	case hi != 0:
		e.buf = append(e.buf, u128Marker)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, lo)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, hi)
	case lo <= singleByteMax:
		e.buf = append(e.buf, byte(lo))
	case lo <= 0xffff:
		e.buf = append(e.buf, u16Marker)
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(lo))
	case lo <= 0xffffffff:
		e.buf = append(e.buf, u32Marker)
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(lo))
	default:
		e.buf = append(e.buf, u64Marker)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, lo)
	}
}

func (e *Encoder) U16(v uint16) *Encoder {
	e.varint(0, uint64(v))
	return e
}

func (e *Encoder) U32(v uint32) *Encoder {
	e.varint(0, uint64(v))
	return e
}

func (e *Encoder) U64(v uint64) *Encoder {
	e.varint(0, v)
	return e
}

func (e *Encoder) U128(hi, lo uint64) *Encoder {
	e.varint(hi, lo)
	return e
}

func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		return e.U8(1)
	}
	return e.U8(0)
}

// Option writes the option tag; the caller writes the value when present is true.
func (e *Encoder) Option(present bool) *Encoder {
	return e.Bool(present)
}

func (e *Encoder) Variant(idx uint32) *Encoder {
	return e.U32(idx)
}

func (e *Encoder) Len(n int) *Encoder {
	return e.U64(uint64(n))
}

func (e *Encoder) ByteBuf(b []byte) *Encoder {
	e.Len(len(b))
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) Fixed(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) Text(s string) *Encoder {
	return e.ByteBuf([]byte(s))
}

func (e *Encoder) ByteBufs(bs [][]byte) *Encoder {
	e.Len(len(bs))
	for _, b := range bs {
		e.ByteBuf(b)
	}
	return e
}
