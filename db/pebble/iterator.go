package pebble

import (
	"github.com/NethermindEth/makimono/db"
	"github.com/cockroachdb/pebble"
)

var _ db.Iterator = (*iterator)(nil)

type iterator struct {
	iter       *pebble.Iterator
	prefixLen  int
	start      []byte
	reverse    bool
	positioned bool
}

// Valid : see db.Iterator.Valid
func (i *iterator) Valid() bool {
	return i.positioned && i.iter.Valid()
}

// Key : see db.Iterator.Key
func (i *iterator) Key() []byte {
	if !i.Valid() {
		return nil
	}
	return i.iter.Key()[i.prefixLen:]
}

// Value : see db.Iterator.Value
func (i *iterator) Value() ([]byte, error) {
	return i.iter.ValueAndErr()
}

// Next : see db.Iterator.Next
func (i *iterator) Next() bool {
	if i.positioned {
		if i.reverse {
			return i.iter.Prev()
		}
		return i.iter.Next()
	}

	i.positioned = true
	switch {
	case i.start == nil && i.reverse:
		return i.iter.Last()
	case i.start == nil:
		return i.iter.First()
	case i.reverse:
		// last key <= start is the last key < start‖0x00
		return i.iter.SeekLT(append(i.start, 0))
	default:
		return i.iter.SeekGE(i.start)
	}
}

// Close : see db.Iterator.Close
func (i *iterator) Close() error {
	return i.iter.Close()
}
