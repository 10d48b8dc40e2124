// Package rocksdb opens the node's RocksDB database read-only through its
// native column families.
package rocksdb

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/NethermindEth/makimono/db"
	"github.com/linxGnu/grocksdb"
)

var _ db.Store = (*DB)(nil)

type DB struct {
	rocksdb  *grocksdb.DB
	path     string
	opts     *options
	ro       *grocksdb.ReadOptions
	columns  []string
	handles  map[db.Column]*grocksdb.ColumnFamilyHandle
	listener db.EventListener
}

// New opens the database at path read-only. Every column family present on
// disk is opened, so the store adapts to whatever schema version wrote it.
// Nothing is written to the directory and a node may keep writing to it.
func New(path string, options ...Option) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", db.ErrPathNotFound, path)
	}

	opts := newOptions(options...)
	names, err := grocksdb.ListColumnFamilies(opts.Options, path)
	if err != nil {
		opts.destroy()
		return nil, fmt.Errorf("list column families: %w", err)
	}

	cfOpts := make([]*grocksdb.Options, len(names))
	for i := range cfOpts {
		cfOpts[i] = opts.Options
	}
	rdb, cfHandles, err := grocksdb.OpenDbForReadOnlyColumnFamilies(opts.Options, path, names, cfOpts, false)
	if err != nil {
		opts.destroy()
		return nil, fmt.Errorf("open rocksdb: %w", err)
	}

	handles := make(map[db.Column]*grocksdb.ColumnFamilyHandle, len(names))
	for i, name := range names {
		handles[db.Column(name)] = cfHandles[i]
	}
	return &DB{
		rocksdb:  rdb,
		path:     path,
		opts:     opts,
		ro:       grocksdb.NewDefaultReadOptions(),
		columns:  names,
		handles:  handles,
		listener: &db.SelectiveListener{},
	}, nil
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
	handle, ok := d.handles[col]
	if !ok {
		return db.ErrKeyNotFound
	}
	start := time.Now()
	value, err := d.rocksdb.GetCF(d.ro, handle, key)
	d.listener.OnIO(col, start)
	if err != nil {
		return err
	}
	defer value.Free()

	if !value.Exists() {
		return db.ErrKeyNotFound
	}
	return cb(value.Data())
}

// NewIterator : see db.Iterable.NewIterator
func (d *DB) NewIterator(col db.Column, start []byte, reverse bool) (db.Iterator, error) {
	handle, ok := d.handles[col]
	if !ok {
		return db.EmptyIterator{}, nil
	}
	defer d.listener.OnIO(col, time.Now())

	return &iterator{
		iter:    d.rocksdb.NewIteratorCF(d.ro, handle),
		start:   start,
		reverse: reverse,
	}, nil
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
	for _, handle := range d.handles {
		handle.Destroy()
	}
	d.rocksdb.Close()
	d.ro.Destroy()
	d.opts.destroy()
	return nil
}
