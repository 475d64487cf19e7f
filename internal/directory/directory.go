// Package directory is the read-only reference data of executors and
// executor segments that batches are proposed to.
package directory

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/rshade/taskbatch/internal/domain"
)

// Directory errors.
var (
	ErrExecutorNotFound = errors.New("executor not found")
	ErrSegmentNotFound  = errors.New("segment not found")
	ErrDuplicateEntry   = errors.New("duplicate directory entry")
)

// Directory indexes executors and segments by id.
type Directory struct {
	executors     []domain.Executor
	segments      []domain.Segment
	executorIndex map[int]int
	segmentIndex  map[int]int
}

// New builds a directory. Ids must be unique within each list.
func New(executors []domain.Executor, segments []domain.Segment) (*Directory, error) {
	d := &Directory{
		executors:     append([]domain.Executor(nil), executors...),
		segments:      append([]domain.Segment(nil), segments...),
		executorIndex: make(map[int]int, len(executors)),
		segmentIndex:  make(map[int]int, len(segments)),
	}
	for i, e := range d.executors {
		if _, dup := d.executorIndex[e.ID]; dup {
			return nil, fmt.Errorf("%w: executor %d", ErrDuplicateEntry, e.ID)
		}
		d.executorIndex[e.ID] = i
	}
	for i, s := range d.segments {
		if _, dup := d.segmentIndex[s.ID]; dup {
			return nil, fmt.Errorf("%w: segment %d", ErrDuplicateEntry, s.ID)
		}
		d.segmentIndex[s.ID] = i
	}
	return d, nil
}

// Executors returns every executor in directory order.
func (d *Directory) Executors() []domain.Executor {
	return append([]domain.Executor(nil), d.executors...)
}

// Segments returns every segment in directory order.
func (d *Directory) Segments() []domain.Segment {
	return append([]domain.Segment(nil), d.segments...)
}

// Executor looks up an executor by id.
func (d *Directory) Executor(id int) (domain.Executor, error) {
	i, ok := d.executorIndex[id]
	if !ok {
		return domain.Executor{}, fmt.Errorf("%w: %d", ErrExecutorNotFound, id)
	}
	return d.executors[i], nil
}

// Segment looks up a segment by id.
func (d *Directory) Segment(id int) (domain.Segment, error) {
	i, ok := d.segmentIndex[id]
	if !ok {
		return domain.Segment{}, fmt.Errorf("%w: %d", ErrSegmentNotFound, id)
	}
	return d.segments[i], nil
}

// SearchExecutors matches query against names, ignoring case, and against
// phone numbers by digits only, so "999 710" finds "+7 (999) 710-25-88".
func (d *Directory) SearchExecutors(query string) []domain.Executor {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.Executors()
	}
	folder := cases.Fold()
	needle := folder.String(query)
	digits := digitsOnly(query)

	var out []domain.Executor
	for _, e := range d.executors {
		if strings.Contains(folder.String(e.Name), needle) ||
			(digits != "" && strings.Contains(digitsOnly(e.Phone), digits)) {
			out = append(out, e)
		}
	}
	return out
}

// SearchSegments matches query against segment names, ignoring case.
func (d *Directory) SearchSegments(query string) []domain.Segment {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.Segments()
	}
	folder := cases.Fold()
	needle := folder.String(query)

	var out []domain.Segment
	for _, s := range d.segments {
		if strings.Contains(folder.String(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// TotalMembers is the number of executors reachable through every segment.
func (d *Directory) TotalMembers() int {
	total := 0
	for _, s := range d.segments {
		total += s.MemberCount
	}
	return total
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
