package db

import "errors"

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrPathNotFound     = errors.New("database path not found")
	ErrNotADatabase     = errors.New("directory does not look like a rocksdb database")
	ErrUnknownBackend   = errors.New("unknown database backend")
	ErrInvalidDBVersion = errors.New("invalid database version file")
)
