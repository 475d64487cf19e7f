package catalog

import "errors"

// Catalog errors.
var (
	ErrBatchNotFound    = errors.New("batch not found")
	ErrDuplicateBatchID = errors.New("duplicate batch id")
)
