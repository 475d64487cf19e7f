package feed

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/taskbatch/internal/domain"
)

// CurrentSchemaVersion is written into snapshots produced by this version.
const CurrentSchemaVersion = "1.0.0"

// SchemaConstraint is the range of snapshot schema versions this version reads.
const SchemaConstraint = "^1"

// Snapshot is a complete, self-consistent view of the console's data.
type Snapshot struct {
	SchemaVersion string                `json:"schema_version" yaml:"schema_version"`
	Batches       []domain.TaskBatch    `json:"batches"        yaml:"batches"`
	BatchTasks    map[int][]domain.Task `json:"tasks"          yaml:"tasks"`
	Executors     []domain.Executor     `json:"executors"      yaml:"executors"`
	Segments      []domain.Segment      `json:"segments"       yaml:"segments"`
}

// Validate checks the schema version and every record.
func (s *Snapshot) Validate() error {
	if err := CheckSchemaVersion(s.SchemaVersion); err != nil {
		return err
	}

	batches := make(map[int]struct{}, len(s.Batches))
	for _, b := range s.Batches {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, dup := batches[b.ID]; dup {
			return fmt.Errorf("%w: batch %d", ErrDuplicateRecord, b.ID)
		}
		batches[b.ID] = struct{}{}
	}

	for _, batchID := range slices.Sorted(maps.Keys(s.BatchTasks)) {
		if _, ok := batches[batchID]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownBatch, batchID)
		}
		seen := make(map[int]struct{}, len(s.BatchTasks[batchID]))
		for _, t := range s.BatchTasks[batchID] {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("batch %d: %w", batchID, err)
			}
			if _, dup := seen[t.ID]; dup {
				return fmt.Errorf("%w: batch %d task %d", ErrDuplicateRecord, batchID, t.ID)
			}
			seen[t.ID] = struct{}{}
		}
	}

	executors := make(map[int]struct{}, len(s.Executors))
	for _, e := range s.Executors {
		if e.ID <= 0 || e.Name == "" {
			return fmt.Errorf("%w: executor %d", ErrInvalidRecord, e.ID)
		}
		if _, dup := executors[e.ID]; dup {
			return fmt.Errorf("%w: executor %d", ErrDuplicateRecord, e.ID)
		}
		executors[e.ID] = struct{}{}
	}

	segments := make(map[int]struct{}, len(s.Segments))
	for _, seg := range s.Segments {
		if seg.ID <= 0 || seg.Name == "" {
			return fmt.Errorf("%w: segment %d", ErrInvalidRecord, seg.ID)
		}
		if seg.MemberCount < 0 {
			return fmt.Errorf("segment %d: %w", seg.ID, domain.ErrNegativeCount)
		}
		if _, dup := segments[seg.ID]; dup {
			return fmt.Errorf("%w: segment %d", ErrDuplicateRecord, seg.ID)
		}
		segments[seg.ID] = struct{}{}
	}
	return nil
}

// CheckSchemaVersion reports whether v satisfies SchemaConstraint.
func CheckSchemaVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing schema_version", ErrUnsupportedSchema)
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, v, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, version, SchemaConstraint)
	}
	return nil
}

// Batch returns the batch with the given id.
func (s *Snapshot) Batch(id int) (domain.TaskBatch, error) {
	for _, b := range s.Batches {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.TaskBatch{}, fmt.Errorf("%w: %d", ErrUnknownBatch, id)
}

// Tasks returns the tasks of a batch. A known batch without a task list
// has no tasks.
func (s *Snapshot) Tasks(batchID int) ([]domain.Task, error) {
	if _, err := s.Batch(batchID); err != nil {
		return nil, err
	}
	return slices.Clone(s.BatchTasks[batchID]), nil
}

// Merge combines partial snapshots. Records may not repeat across parts.
// The result takes the schema version of the first part and is not validated.
func Merge(parts ...*Snapshot) (*Snapshot, error) {
	out := &Snapshot{BatchTasks: make(map[int][]domain.Task)}
	for i, p := range parts {
		if i == 0 {
			out.SchemaVersion = p.SchemaVersion
		}
		out.Batches = append(out.Batches, p.Batches...)
		for batchID, tasks := range p.BatchTasks {
			if _, dup := out.BatchTasks[batchID]; dup {
				return nil, fmt.Errorf("%w: tasks of batch %d", ErrDuplicateRecord, batchID)
			}
			out.BatchTasks[batchID] = tasks
		}
		out.Executors = append(out.Executors, p.Executors...)
		out.Segments = append(out.Segments, p.Segments...)
	}
	return out, nil
}
