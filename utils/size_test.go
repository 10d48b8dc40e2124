package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/makimono/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSizeString(t *testing.T) {
	tests := map[utils.DataSize]string{
		12:                "12.00 B",
		2048:              "2.00 KiB",
		3 * 1048576:       "3.00 MiB",
		1.5 * 1073741824:  "1.50 GiB",
		2 * 1099511627776: "2.00 TiB",
	}
	for size, want := range tests {
		assert.Equal(t, want, size.String())
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 28), 0o600))

	size, err := utils.DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, utils.DataSize(128), size)

	_, err = utils.DirSize(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
