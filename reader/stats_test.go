package reader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/makimono/core/coretest"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/mocks"
	"github.com/NethermindEth/makimono/reader"
	"github.com/NethermindEth/makimono/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStats(t *testing.T) {
	t.Run("in-memory store", func(t *testing.T) {
		content := chain(5).put(db.ClassInfo, coretest.FeltN(0xc1).Marshal(), []byte{1})
		stats, err := newReader(t, content).Stats()
		require.NoError(t, err)

		assert.Equal(t, &reader.Stats{
			LatestBlock: utils.HeapPtr(uint64(4)),
			ColumnCount: 2,
			Columns:     []string{"block_info", "class_info"},
		}, stats)
	})

	t.Run("empty store", func(t *testing.T) {
		stats, err := newReader(t, records{}).Stats()
		require.NoError(t, err)
		assert.Nil(t, stats.LatestBlock)
		assert.Zero(t, stats.ColumnCount)
	})

	t.Run("version file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, db.VersionFile), []byte("8\n"), 0o600))

		mockCtrl := gomock.NewController(t)
		store := mocks.NewMockStore(mockCtrl)
		store.EXPECT().Path().Return(dir)
		store.EXPECT().ColumnFamilies().Return([]string{"default", "block_info"})
		store.EXPECT().NewIterator(db.BlockInfo, nil, true).Return(db.EmptyIterator{}, nil)

		stats, err := reader.New(store, utils.NewNopLogger()).Stats()
		require.NoError(t, err)
		assert.Equal(t, &reader.Stats{
			DBPath:      dir,
			ColumnCount: 2,
			Columns:     []string{"default", "block_info"},
			DBVersion:   &db.Version{Number: 8, Source: filepath.Join(dir, db.VersionFile)},
		}, stats)
	})

	t.Run("no version file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		require.NoError(t, os.Mkdir(dir, 0o700))

		mockCtrl := gomock.NewController(t)
		store := mocks.NewMockStore(mockCtrl)
		store.EXPECT().Path().Return(dir)
		store.EXPECT().ColumnFamilies().Return(nil)
		store.EXPECT().NewIterator(db.BlockInfo, nil, true).Return(db.EmptyIterator{}, nil)

		stats, err := reader.New(store, utils.NewNopLogger()).Stats()
		require.NoError(t, err)
		assert.Equal(t, dir, stats.DBPath)
		assert.Nil(t, stats.DBVersion)
	})
}
