package felt

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Bytes is the size of the canonical Felt encoding.
const Bytes = 32

var ErrInvalidHex = errors.New("invalid hex string")

// Felt is a 252-bit field element kept as its raw 32-byte big-endian buffer.
// Values are never reduced modulo the field prime: the node's bytes are the value.
type Felt [Bytes]byte

// Zero felt constant
var Zero = Felt{}

// FromBytes right-aligns b into a zero-filled 32-byte buffer. Inputs longer than
// 32 bytes keep only their first 32 bytes.
func FromBytes(b []byte) Felt {
	var f Felt
	n := min(len(b), Bytes)
	copy(f[Bytes-n:], b[:n])
	return f
}

// Parse accepts a hex string with an optional 0x prefix and applies the
// FromBytes padding rule. Odd-length inputs get a leading zero nibble.
func Parse(s string) (Felt, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, ErrInvalidHex
	}
	return FromBytes(b), nil
}

// Hex renders the felt with leading zero bytes stripped. The last byte is always
// kept so zero renders as 0x00.
func (z Felt) Hex() string {
	i := 0
	for i < Bytes-1 && z[i] == 0 {
		i++
	}
	return "0x" + hex.EncodeToString(z[i:])
}

// FullHex renders all 32 bytes.
func (z Felt) FullHex() string {
	return "0x" + hex.EncodeToString(z[:])
}

func (z Felt) String() string {
	return z.Hex()
}

func (z Felt) IsZero() bool {
	return z == Zero
}

// Marshal returns the 32-byte big-endian encoding, as used for store keys
func (z Felt) Marshal() []byte {
	b := z
	return b[:]
}

func (z Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.Hex() + `"`), nil
}

func (z *Felt) UnmarshalJSON(data []byte) error {
	f, err := Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*z = f
	return nil
}
