// Package reader turns the raw records of a node store into display-ready
// blocks, transactions, contracts and classes.
package reader

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/utils"
	"github.com/ethereum/go-ethereum/common/lru"
)

const (
	DefaultBlockCacheSize = 1024
	// Number of value bytes logged when a record fails to decode
	decodeFailurePrefix = 50
)

var ErrNotFound = errors.New("not found")

// Reader is safe for concurrent use. It never writes to the store, and since
// the store is a snapshot, decoded records are cached for the reader's lifetime.
type Reader struct {
	store    db.Store
	log      utils.SimpleLogger
	listener EventListener

	blockCache *lru.Cache[uint32, *core.BlockInfo]
}

func New(store db.Store, log utils.SimpleLogger) *Reader {
	return &Reader{
		store:      store,
		log:        log,
		listener:   &SelectiveListener{},
		blockCache: lru.NewCache[uint32, *core.BlockInfo](DefaultBlockCacheSize),
	}
}

// WithBlockCacheSize sets how many decoded blocks are kept. Zero disables the cache.
func (r *Reader) WithBlockCacheSize(size int) *Reader {
	if size <= 0 {
		r.blockCache = nil
		return r
	}
	r.blockCache = lru.NewCache[uint32, *core.BlockInfo](size)
	return r
}

func (r *Reader) WithListener(listener EventListener) *Reader {
	r.listener = listener
	return r
}

// record reads and decodes the value at key. Missing keys give ErrNotFound. A
// value that does not decode is logged, counted and also reported as
// ErrNotFound, so that one malformed record never fails a whole listing.
func record[T any](r *Reader, col db.Column, key []byte, decode func([]byte) (T, error)) (T, error) {
	var value T
	err := r.store.Get(col, key, func(b []byte) error {
		var decodeErr error
		value, decodeErr = decode(b)
		if decodeErr != nil {
			r.decodeFailed(col, key, b, decodeErr)
			return ErrNotFound
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, db.ErrKeyNotFound), errors.Is(err, ErrNotFound):
		err = ErrNotFound
	default:
		err = fmt.Errorf("read %s: %w", col, err)
	}
	r.listener.OnLookup(col, err == nil)
	return value, err
}

func (r *Reader) decodeFailed(col db.Column, key, value []byte, err error) {
	r.log.Warnw("Failed to decode record",
		"column", col,
		"key", hex.EncodeToString(key),
		"prefix", hex.EncodeToString(value[:min(len(value), decodeFailurePrefix)]),
		"err", err,
	)
	r.listener.OnDecodeFailure(col)
}
