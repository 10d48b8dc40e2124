package pebble

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/NethermindEth/makimono/db"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var _ db.Store = (*DB)(nil)

// Pebble has no column families. Each column is emulated as a key prefix made
// of the column name followed by this separator.
const separator = 0x00

// DB is a pebble backed db.Store. It is used for pure Go deployments and as the
// in-memory store behind tests.
type DB struct {
	pebble   *pebble.DB
	path     string
	columns  []string
	listener db.EventListener
}

// New opens the database at the given path read-only
func New(path string, options ...Option) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", db.ErrPathNotFound, path)
	}

	opts := &pebble.Options{ReadOnly: true}
	for _, option := range options {
		if err := option(opts); err != nil {
			return nil, err
		}
	}
	return newPebble(path, opts)
}

// NewMem opens a new in-memory database holding whatever seed writes
func NewMem(seed func(*Writer) error) (*DB, error) {
	pDB, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}
	if err = populate(pDB, seed); err != nil {
		return nil, errors.Join(err, pDB.Close())
	}
	return wrap(pDB, "")
}

// Create writes a new database at path holding whatever seed writes. It is
// meant for fixtures, the result is opened with New like any other database.
func Create(path string, seed func(*Writer) error) error {
	pDB, err := pebble.Open(path, &pebble.Options{ErrorIfExists: true})
	if err != nil {
		return err
	}
	return errors.Join(populate(pDB, seed), pDB.Close())
}

func populate(pDB *pebble.DB, seed func(*Writer) error) error {
	if seed == nil {
		return nil
	}
	w := &Writer{batch: pDB.NewBatch()}
	if err := seed(w); err != nil {
		return errors.Join(err, w.batch.Close())
	}
	return w.batch.Commit(pebble.Sync)
}

// NewMemTest opens a new in-memory database, fails the test on error
func NewMemTest(t testing.TB, seed func(*Writer) error) *DB {
	t.Helper()

	memDB, err := NewMem(seed)
	if err != nil {
		t.Fatalf("create in-memory db: %v", err)
	}
	t.Cleanup(func() {
		if err := memDB.Close(); err != nil {
			t.Errorf("close in-memory db: %v", err)
		}
	})
	return memDB
}

func newPebble(path string, options *pebble.Options) (*DB, error) {
	pDB, err := pebble.Open(path, options)
	if err != nil {
		return nil, err
	}
	return wrap(pDB, path)
}

func wrap(pDB *pebble.DB, path string) (*DB, error) {
	columns, err := discoverColumns(pDB)
	if err != nil {
		return nil, errors.Join(err, pDB.Close())
	}
	return &DB{
		pebble:   pDB,
		path:     path,
		columns:  columns,
		listener: &db.SelectiveListener{},
	}, nil
}

// discoverColumns lists the distinct column prefixes by seeking past each
// column once it has been seen.
func discoverColumns(pDB *pebble.DB) ([]string, error) {
	it, err := pDB.NewIter(nil)
	if err != nil {
		return nil, err
	}

	var columns []string
	for valid := it.First(); valid; {
		key := it.Key()
		end := bytes.IndexByte(key, separator)
		if end < 0 {
			// not a column key
			valid = it.Next()
			continue
		}
		name := string(key[:end])
		columns = append(columns, name)
		valid = it.SeekGE(append([]byte(name), separator+1))
	}
	return columns, errors.Join(it.Error(), it.Close())
}

func columnPrefix(col db.Column) []byte {
	return append([]byte(col), separator)
}

func (d *DB) hasColumn(col db.Column) bool {
	return slices.Contains(d.columns, string(col))
}

// WithListener registers an EventListener
func (d *DB) WithListener(listener db.EventListener) db.Store {
	d.listener = listener
	return d
}

// Has : see db.KeyValueReader.Has
func (d *DB) Has(col db.Column, key []byte) (bool, error) {
	err := d.Get(col, key, func([]byte) error { return nil })
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Get : see db.KeyValueReader.Get
func (d *DB) Get(col db.Column, key []byte, cb func(value []byte) error) error {
	if !d.hasColumn(col) {
		return db.ErrKeyNotFound
	}
	start := time.Now()
	value, closer, err := d.pebble.Get(append(columnPrefix(col), key...))
	d.listener.OnIO(col, start)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return db.ErrKeyNotFound
		}
		return err
	}
	return errors.Join(cb(value), closer.Close())
}

// NewIterator : see db.Iterable.NewIterator
func (d *DB) NewIterator(col db.Column, start []byte, reverse bool) (db.Iterator, error) {
	if !d.hasColumn(col) {
		return db.EmptyIterator{}, nil
	}
	defer d.listener.OnIO(col, time.Now())

	prefix := columnPrefix(col)
	it, err := d.pebble.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: append([]byte(col), separator+1),
	})
	if err != nil {
		return nil, err
	}
	var seek []byte
	if start != nil {
		seek = slices.Concat(prefix, start)
	}
	return &iterator{iter: it, prefixLen: len(prefix), start: seek, reverse: reverse}, nil
}

// ColumnFamilies : see db.Store.ColumnFamilies
func (d *DB) ColumnFamilies() []string {
	return slices.Clone(d.columns)
}

// Path : see db.Store.Path
func (d *DB) Path() string {
	return d.path
}

// Close : see io.Closer.Close
func (d *DB) Close() error {
	return d.pebble.Close()
}

// Writer seeds a new database
type Writer struct {
	batch *pebble.Batch
}

func (w *Writer) Put(col db.Column, key, value []byte) error {
	return w.batch.Set(append(columnPrefix(col), key...), value, nil)
}
