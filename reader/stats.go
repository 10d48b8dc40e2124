package reader

import (
	"errors"

	"github.com/NethermindEth/makimono/db"
)

type Stats struct {
	DBPath      string      `json:"db_path" yaml:"db_path"`
	LatestBlock *uint64     `json:"latest_block" yaml:"latest_block"`
	ColumnCount int         `json:"column_count" yaml:"column_count"`
	Columns     []string    `json:"columns" yaml:"columns"`
	DBVersion   *db.Version `json:"db_version" yaml:"db_version"`
}

// Stats describes the store. A missing or unreadable version file only leaves
// DBVersion empty.
func (r *Reader) Stats() (*Stats, error) {
	columns := r.store.ColumnFamilies()
	stats := &Stats{
		DBPath:      r.store.Path(),
		ColumnCount: len(columns),
		Columns:     columns,
	}

	latest, err := r.LatestBlockNumber()
	if err == nil {
		stats.LatestBlock = &latest
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if stats.DBPath != "" {
		if stats.DBVersion, err = db.DetectVersion(stats.DBPath); err != nil {
			r.log.Debugw("No database version", "err", err)
		}
	}
	return stats, nil
}
