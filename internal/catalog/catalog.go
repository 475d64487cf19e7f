package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/taskbatch/internal/domain"
)

// Catalog holds the ordered collection of batches.
type Catalog struct {
	batches []domain.TaskBatch
	folded  []string
	index   map[int]int
}

// New validates batches and returns a catalog in canonical order.
// The first invalid or duplicate record fails the whole snapshot.
func New(batches []domain.TaskBatch) (*Catalog, error) {
	seen := make(map[int]struct{}, len(batches))
	for _, b := range batches {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateBatchID, b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	ordered := slices.Clone(batches)
	slices.SortFunc(ordered, canonicalOrder)

	folder := cases.Fold()
	c := &Catalog{
		batches: ordered,
		folded:  make([]string, len(ordered)),
		index:   make(map[int]int, len(ordered)),
	}
	for i, b := range ordered {
		c.folded[i] = folder.String(b.Name)
		c.index[b.ID] = i
	}
	return c, nil
}

// canonicalOrder sorts newest first, then by descending id.
func canonicalOrder(a, b domain.TaskBatch) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// Len returns the number of batches.
func (c *Catalog) Len() int {
	return len(c.batches)
}

// All returns every batch in canonical order.
func (c *Catalog) All() []domain.TaskBatch {
	return slices.Clone(c.batches)
}

// Get returns the batch with the given id.
func (c *Catalog) Get(id int) (domain.TaskBatch, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.TaskBatch{}, fmt.Errorf("%w: %d", ErrBatchNotFound, id)
	}
	return c.batches[i], nil
}

// Search returns the batches whose name contains query, ignoring case.
// An empty query returns the whole catalog. Canonical order is preserved.
func (c *Catalog) Search(query string) []domain.TaskBatch {
	if query == "" {
		return c.All()
	}

	needle := cases.Fold().String(query)
	result := make([]domain.TaskBatch, 0, len(c.batches))
	for i, b := range c.batches {
		if strings.Contains(c.folded[i], needle) {
			result = append(result, b)
		}
	}
	return result
}
