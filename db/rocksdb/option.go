package rocksdb

import (
	"github.com/NethermindEth/makimono/utils"
	"github.com/linxGnu/grocksdb"
)

const minCacheSizeMB = 8

// options owns every native object created while configuring the database, so
// all of them can be released together on Close.
type options struct {
	*grocksdb.Options
	cache *grocksdb.Cache
	table *grocksdb.BlockBasedTableOptions
}

func newOptions(opts ...Option) *options {
	o := &options{Options: grocksdb.NewDefaultOptions()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// destroy releases the options only after the database using them is closed.
func (o *options) destroy() {
	o.Options.Destroy()
	o.releaseCache()
}

func (o *options) releaseCache() {
	if o.table != nil {
		o.table.Destroy()
		o.table = nil
	}
	if o.cache != nil {
		o.cache.Destroy()
		o.cache = nil
	}
}

type Option = func(*options)

// WithCacheSize sets the size of the shared block cache
func WithCacheSize(cacheSizeMB uint) Option {
	cacheSizeMB = max(cacheSizeMB, minCacheSizeMB)
	return func(opts *options) {
		opts.releaseCache()
		opts.cache = grocksdb.NewLRUCache(uint64(cacheSizeMB * utils.Megabyte))
		opts.table = grocksdb.NewDefaultBlockBasedTableOptions()
		opts.table.SetBlockCache(opts.cache)
		opts.SetBlockBasedTableFactory(opts.table)
	}
}

func WithMaxOpenFiles(maxOpenFiles int) Option {
	return func(opts *options) {
		opts.SetMaxOpenFiles(maxOpenFiles)
	}
}
