package pagination

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/rshade/taskbatch/internal/domain"
)

// Sorter defines the interface for sorting task batches.
type Sorter interface {
	// Sort sorts a slice of batches by the specified field and order.
	Sort(batches []domain.TaskBatch, field, order string) []domain.TaskBatch
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// BatchSorter implements Sorter for domain.TaskBatch.
type BatchSorter struct {
	validFields map[string]bool
}

// NewBatchSorter creates a BatchSorter with the supported sort fields.
func NewBatchSorter() *BatchSorter {
	return &BatchSorter{
		validFields: map[string]bool{
			"id":       true,
			"name":     true,
			"created":  true,
			"tasks":    true,
			"accepted": true,
			"signed":   true,
			"paid":     true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *BatchSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *BatchSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort sorts batches by the specified field and order.
// Returns a new sorted slice; does not modify the original.
// If field is invalid, returns the original slice unchanged.
// The sort is stable, so equal keys keep their incoming (canonical) order.
func (s *BatchSorter) Sort(batches []domain.TaskBatch, field, order string) []domain.TaskBatch {
	if !s.IsValidField(field) {
		return batches
	}

	sorted := slices.Clone(batches)
	slices.SortStableFunc(sorted, func(a, b domain.TaskBatch) int {
		c := compareBatches(a, b, field)
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted
}

func compareBatches(a, b domain.TaskBatch, field string) int {
	switch field {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "created":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "tasks":
		return cmp.Compare(a.TaskCount, b.TaskCount)
	case "accepted":
		return cmp.Compare(domain.ProgressPercent(a.Accepted), domain.ProgressPercent(b.Accepted))
	case "signed":
		return cmp.Compare(domain.ProgressPercent(a.Signed), domain.ProgressPercent(b.Signed))
	case "paid":
		return cmp.Compare(domain.ProgressPercent(a.Paid), domain.ProgressPercent(b.Paid))
	default:
		return 0
	}
}
