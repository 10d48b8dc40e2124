package db

import "io"

// Represents a data store that can read single keys
type KeyValueReader interface {
	// Checks if a key exists in the given column
	Has(col Column, key []byte) (bool, error)
	// Retrieves the value for a given key. The value passed to cb is only valid
	// for the duration of the call. ErrKeyNotFound is returned when the key or
	// the column is absent.
	Get(col Column, key []byte, cb func(value []byte) error) error
}

type Iterable interface {
	// NewIterator returns an iterator over col. A forward iterator starts at the
	// first key >= start, a reverse one at the last key <= start. A nil start
	// means the first or last key of the column. Iterating a column the store
	// does not have yields nothing.
	NewIterator(col Column, start []byte, reverse bool) (Iterator, error)
}

type Listener interface {
	WithListener(listener EventListener) Store
}

//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks github.com/NethermindEth/makimono/db Store

// Store is a read-only view of a node database, fixed at the time it was
// opened. Implementations are safe for concurrent use.
type Store interface {
	KeyValueReader
	Iterable
	Listener
	// ColumnFamilies lists the column families present in the database
	ColumnFamilies() []string
	// Path returns the directory the store was opened from
	Path() string
	io.Closer
}

// Copies the value of the given key into a new slice
func GetCopy(s KeyValueReader, col Column, key []byte) ([]byte, error) {
	var value []byte
	err := s.Get(col, key, func(v []byte) error {
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}
