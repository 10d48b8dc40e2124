package validator_test

import (
	"testing"

	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/utils"
	"github.com/NethermindEth/makimono/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	type settings struct {
		Backend  db.Backend     `validate:"db_backend"`
		LogLevel utils.LogLevel `validate:"oneof=debug info warn"`
		Limit    uint64         `validate:"max=1000"`
	}

	v := validator.Validator()
	assert.Same(t, v, validator.Validator())

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.Struct(settings{
			Backend:  db.Pebble,
			LogLevel: *utils.NewLogLevel(utils.DEBUG),
			Limit:    1000,
		}))
	})

	t.Run("zero log level is info", func(t *testing.T) {
		require.NoError(t, v.Struct(settings{Backend: db.RocksDB}))
	})

	tests := map[string]settings{
		"unknown backend": {Backend: "leveldb"},
		"empty backend":   {},
		"log level":       {Backend: db.RocksDB, LogLevel: *utils.NewLogLevel(utils.ERROR)},
		"limit":           {Backend: db.RocksDB, Limit: 1001},
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, v.Struct(s))
		})
	}
}
