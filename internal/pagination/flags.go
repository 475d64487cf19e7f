package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	// DefaultPageSize is the number of batches the console shows per page.
	DefaultPageSize  = 8
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultPage      = 1
	MinPage          = 1
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'created:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the per-view list state supplied by the presentation layer.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of items per page.
	PageSize int

	// SortField is the field name to sort by (e.g., "created", "paid").
	// Empty keeps the source ordering.
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewParams creates Params with default values.
func NewParams() Params {
	return Params{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks that the page size is within limits and the page is not negative.
// A page beyond the last one is not an error here; it is clamped when applied.
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "created:desc", "paid:asc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
