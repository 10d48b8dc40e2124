package rocksdb

import (
	"github.com/NethermindEth/makimono/db"
	"github.com/linxGnu/grocksdb"
)

var _ db.Iterator = (*iterator)(nil)

type iterator struct {
	iter       *grocksdb.Iterator
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
	return i.iter.Key().Data()
}

// Value : see db.Iterator.Value
func (i *iterator) Value() ([]byte, error) {
	if err := i.iter.Err(); err != nil {
		return nil, err
	}
	return i.iter.Value().Data(), nil
}

// Next : see db.Iterator.Next
func (i *iterator) Next() bool {
	if i.positioned {
		if !i.iter.Valid() {
			return false
		}
		if i.reverse {
			i.iter.Prev()
		} else {
			i.iter.Next()
		}
		return i.iter.Valid()
	}

	i.positioned = true
	switch {
	case i.start == nil && i.reverse:
		i.iter.SeekToLast()
	case i.start == nil:
		i.iter.SeekToFirst()
	case i.reverse:
		i.iter.SeekForPrev(i.start)
	default:
		i.iter.Seek(i.start)
	}
	return i.iter.Valid()
}

// Close : see db.Iterator.Close
func (i *iterator) Close() error {
	err := i.iter.Err()
	i.iter.Close()
	return err
}
