package core

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/NethermindEth/makimono/encoder/bincode"
	"github.com/holiman/uint256"
)

var errUint128Overflow = errors.New("value does not fit in 128 bits")

// Uint128 holds gas amounts and prices, which the node stores as u128.
type Uint128 struct {
	hi uint64
	lo uint64
}

func NewUint128(hi, lo uint64) Uint128 {
	return Uint128{
		hi: hi,
		lo: lo,
	}
}

func decodeUint128(d *bincode.Decoder) Uint128 {
	hi, lo := d.U128()
	return NewUint128(hi, lo)
}

func (u Uint128) Hi() uint64 { return u.hi }
func (u Uint128) Lo() uint64 { return u.lo }

func (u Uint128) Bytes() []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return b
}

func (u Uint128) Int() *uint256.Int {
	return &uint256.Int{u.lo, u.hi, 0, 0}
}

func (u Uint128) IsZero() bool {
	return u.hi == 0 && u.lo == 0
}

func (u Uint128) Equal(o Uint128) bool {
	return u.hi == o.hi && u.lo == o.lo
}

// String renders the value in decimal.
func (u Uint128) String() string {
	return u.Int().Dec()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	v, err := uint256.FromDecimal(s)
	if err != nil {
		if v, err = uint256.FromHex(s); err != nil {
			return err
		}
	}
	if v[2] != 0 || v[3] != 0 {
		return errUint128Overflow
	}
	u.hi, u.lo = v[1], v[0]
	return nil
}
