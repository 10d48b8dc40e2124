package db

import "io"

// Iterator walks the key/value pairs of one column in the direction it was
// created with. It starts unpositioned: the first call to Next moves it onto the
// start key. It must be closed after use. A single iterator cannot be used
// concurrently. Multiple iterators can be used concurrently.
type Iterator interface {
	io.Closer

	// Valid returns true if the iterator is positioned at a valid key/value pair.
	Valid() bool

	// Next moves the iterator to the next key/value pair. It returns whether the
	// iterator is valid after the call. Once invalid, the iterator remains
	// invalid.
	Next() bool

	// Key returns the key at the current position.
	Key() []byte

	// Value returns the value at the current position.
	Value() ([]byte, error)
}

// EmptyIterator is returned for columns the store does not have
type EmptyIterator struct{}

var _ Iterator = EmptyIterator{}

func (EmptyIterator) Valid() bool            { return false }
func (EmptyIterator) Next() bool             { return false }
func (EmptyIterator) Key() []byte            { return nil }
func (EmptyIterator) Value() ([]byte, error) { return nil, nil }
func (EmptyIterator) Close() error           { return nil }
