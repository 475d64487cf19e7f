package feed

import "errors"

// Feed errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported snapshot schema version")
	ErrUnknownFormat     = errors.New("unknown snapshot file format")
	ErrUnknownBatch      = errors.New("tasks reference an unknown batch")
	ErrDuplicateRecord   = errors.New("duplicate record")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrNoSnapshotFiles   = errors.New("no snapshot files found")
)
