package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Content is the initial data of a test store, keyed by column then key.
type Content map[Column]map[string]string

// TestStoreSuite runs a suite of tests against a Store implementation. newStore
// must return a store holding exactly content.
//
//nolint:funlen
func TestStoreSuite(t *testing.T, newStore func(t *testing.T, content Content) Store) {
	content := Content{
		"a":  {"k1": "v1", "k3": "v3", "k5": "v5"},
		"ab": {"k2": "x2", "k4": "x4"},
		"c":  {"\x00": "zero", "\xff\xff": "max"},
	}

	t.Run("Get", func(t *testing.T) {
		store := newStore(t, content)

		value, err := GetCopy(store, "a", []byte("k3"))
		require.NoError(t, err)
		assert.Equal(t, "v3", string(value))

		value, err = GetCopy(store, "c", []byte{0xff, 0xff})
		require.NoError(t, err)
		assert.Equal(t, "max", string(value))

		_, err = GetCopy(store, "a", []byte("k2"))
		require.ErrorIs(t, err, ErrKeyNotFound, "key from a neighbouring column")

		_, err = GetCopy(store, "missing", []byte("k1"))
		require.ErrorIs(t, err, ErrKeyNotFound, "absent column")
	})

	t.Run("Has", func(t *testing.T) {
		store := newStore(t, content)

		ok, err := store.Has("ab", []byte("k4"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Has("ab", []byte("k5"))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Has("missing", []byte("k5"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ColumnFamilies", func(t *testing.T) {
		store := newStore(t, content)
		assert.Subset(t, store.ColumnFamilies(), []string{"a", "ab", "c"})
		assert.NotContains(t, store.ColumnFamilies(), "missing")
	})

	t.Run("Iterator", func(t *testing.T) {
		tests := []struct {
			name    string
			col     Column
			start   []byte
			reverse bool
			order   []string
		}{
			{name: "forward from first", col: "a", order: []string{"k1", "k3", "k5"}},
			{name: "forward from existing key", col: "a", start: []byte("k3"), order: []string{"k3", "k5"}},
			{name: "forward from gap", col: "a", start: []byte("k2"), order: []string{"k3", "k5"}},
			{name: "forward past last", col: "a", start: []byte("k6"), order: nil},
			{name: "reverse from last", col: "a", reverse: true, order: []string{"k5", "k3", "k1"}},
			{name: "reverse from existing key", col: "a", start: []byte("k3"), reverse: true, order: []string{"k3", "k1"}},
			{name: "reverse from gap", col: "a", start: []byte("k4"), reverse: true, order: []string{"k3", "k1"}},
			{name: "reverse before first", col: "a", start: []byte("k0"), reverse: true, order: nil},
			{name: "column sharing a name prefix", col: "ab", order: []string{"k2", "k4"}},
			{name: "extreme keys", col: "c", order: []string{"\x00", "\xff\xff"}},
			{name: "extreme keys reversed", col: "c", reverse: true, order: []string{"\xff\xff", "\x00"}},
			{name: "absent column", col: "missing", order: nil},
			{name: "absent column reversed", col: "missing", reverse: true, order: nil},
		}

		store := newStore(t, content)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				it, err := store.NewIterator(tt.col, tt.start, tt.reverse)
				require.NoError(t, err, "failed to create iterator")
				defer it.Close()

				var keys []string
				for it.Next() {
					require.True(t, it.Valid())
					keys = append(keys, string(it.Key()))
					val, err := it.Value()
					require.NoError(t, err, "failed to get value")
					require.Equal(t, content[tt.col][string(it.Key())], string(val), "value mismatch")
				}
				assert.Equal(t, tt.order, keys)
				assert.False(t, it.Valid())
				assert.False(t, it.Next(), "exhausted iterator stays invalid")
			})
		}
	})

	t.Run("Listener", func(t *testing.T) {
		store := newStore(t, content)

		var cols []Column
		store.WithListener(&SelectiveListener{
			OnIOCb: func(col Column, _ time.Duration) {
				cols = append(cols, col)
			},
		})

		_, err := GetCopy(store, "a", []byte("k1"))
		require.NoError(t, err)
		it, err := store.NewIterator("ab", nil, false)
		require.NoError(t, err)
		require.NoError(t, it.Close())

		assert.Equal(t, []Column{"a", "ab"}, cols)
	})
}
