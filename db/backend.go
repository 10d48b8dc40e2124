package db

import (
	"fmt"
	"slices"
)

// Backend names the engine a database directory is opened with
type Backend string

const (
	RocksDB Backend = "rocksdb"
	Pebble  Backend = "pebble"
)

var Backends = []Backend{RocksDB, Pebble}

func (b Backend) String() string {
	return string(b)
}

func (b Backend) Known() bool {
	return slices.Contains(Backends, b)
}

func (b *Backend) Set(s string) error {
	if !Backend(s).Known() {
		return fmt.Errorf("%w %q (known: %s, %s)", ErrUnknownBackend, s, RocksDB, Pebble)
	}
	*b = Backend(s)
	return nil
}

func (b *Backend) Type() string {
	return "Backend"
}

func (b *Backend) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}
