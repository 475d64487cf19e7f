package composer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/taskbatch/internal/directory"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/logging"
)

// Composer errors.
var (
	ErrMissingTaskName    = errors.New("task name is required")
	ErrNoRecipients       = errors.New("no executors or segments selected")
	ErrUnknownMode        = errors.New("unknown proposal mode")
	ErrInvalidTimeOfDay   = errors.New("invalid time of day")
	ErrNoCreator          = errors.New("no batch creator configured")
	ErrEmptyTag           = errors.New("tag is empty")
	ErrTagAlreadyAttached = errors.New("tag already attached")
)

// timeOfDayLayout is the accepted HH:MM format.
const timeOfDayLayout = "15:04"

// ProposalMode decides who a new batch is offered to.
type ProposalMode string

// Proposal modes.
const (
	// ModeExecutor offers the batch to the selected executors and segments.
	ModeExecutor ProposalMode = "executor"
	// ModeAll publishes the batch to every executor.
	ModeAll ProposalMode = "all"
)

// ParseProposalMode accepts "executor" and "all".
func ParseProposalMode(s string) (ProposalMode, error) {
	switch ProposalMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExecutor:
		return ModeExecutor, nil
	case ModeAll:
		return ModeAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Details are the free-form fields of a new batch.
type Details struct {
	TaskName        string      `json:"task_name"                  yaml:"task_name"`
	Project         string      `json:"project,omitempty"          yaml:"project,omitempty"`
	Location        string      `json:"location,omitempty"         yaml:"location,omitempty"`
	Remote          bool        `json:"remote"                     yaml:"remote"`
	DeadlineDate    domain.Date `json:"deadline_date"              yaml:"deadline_date"`
	DeadlineTime    string      `json:"deadline_time,omitempty"    yaml:"deadline_time,omitempty"`
	ExecutionDate   domain.Date `json:"execution_date"             yaml:"execution_date"`
	ExecutionTime   string      `json:"execution_time,omitempty"   yaml:"execution_time,omitempty"`
	Description     string      `json:"description,omitempty"      yaml:"description,omitempty"`
	Instructions    string      `json:"instructions,omitempty"     yaml:"instructions,omitempty"`
	InternalComment string      `json:"internal_comment,omitempty" yaml:"internal_comment,omitempty"`
}

// CreateBatchRequest is a finished draft handed to a BatchCreator.
type CreateBatchRequest struct {
	ID           string       `json:"id"            yaml:"id"`
	Details      Details      `json:"details"       yaml:"details"`
	Tags         []string     `json:"tags"          yaml:"tags"`
	Mode         ProposalMode `json:"mode"          yaml:"mode"`
	ExecutorIDs  []int        `json:"executor_ids"  yaml:"executor_ids"`
	SegmentIDs   []int        `json:"segment_ids"   yaml:"segment_ids"`
	AudienceSize int          `json:"audience_size" yaml:"audience_size"`
}

// BatchCreator creates batches from finished drafts.
type BatchCreator interface {
	CreateBatch(ctx context.Context, req CreateBatchRequest) error
}

// Composer is the draft of one new batch.
type Composer struct {
	Details

	dir       *directory.Directory
	tags      []string
	executors map[int]struct{}
	segments  map[int]struct{}
	mode      ProposalMode
}

// New returns an empty draft proposing to executors picked from dir.
func New(dir *directory.Directory) *Composer {
	return &Composer{
		dir:       dir,
		executors: make(map[int]struct{}),
		segments:  make(map[int]struct{}),
		mode:      ModeExecutor,
	}
}

// AddTag attaches a trimmed tag. Empty and repeated tags are rejected.
func (c *Composer) AddTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	if slices.Contains(c.tags, tag) {
		return fmt.Errorf("%w: %q", ErrTagAlreadyAttached, tag)
	}
	c.tags = append(c.tags, tag)
	return nil
}

// RemoveTag detaches tag if present.
func (c *Composer) RemoveTag(tag string) {
	c.tags = slices.DeleteFunc(c.tags, func(t string) bool { return t == tag })
}

// Tags returns the attached tags in the order they were added.
func (c *Composer) Tags() []string {
	return slices.Clone(c.tags)
}

// ToggleExecutor selects or deselects an executor from the directory.
func (c *Composer) ToggleExecutor(id int) error {
	if _, err := c.dir.Executor(id); err != nil {
		return err
	}
	toggle(c.executors, id)
	return nil
}

// ToggleSegment selects or deselects a segment from the directory.
func (c *Composer) ToggleSegment(id int) error {
	if _, err := c.dir.Segment(id); err != nil {
		return err
	}
	toggle(c.segments, id)
	return nil
}

func toggle(set map[int]struct{}, id int) {
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	set[id] = struct{}{}
}

// ExecutorIDs returns the selected executors in ascending order.
func (c *Composer) ExecutorIDs() []int {
	return slices.Sorted(maps.Keys(c.executors))
}

// SegmentIDs returns the selected segments in ascending order.
func (c *Composer) SegmentIDs() []int {
	return slices.Sorted(maps.Keys(c.segments))
}

// SetMode switches between proposing to a selection and to everyone.
// Selections are kept so switching back restores them.
func (c *Composer) SetMode(mode ProposalMode) error {
	if _, err := ParseProposalMode(string(mode)); err != nil {
		return err
	}
	c.mode = mode
	return nil
}

// Mode returns the current proposal mode.
func (c *Composer) Mode() ProposalMode {
	return c.mode
}

// AudienceSize estimates how many executors the batch reaches. Segments
// may overlap with selected executors; the estimate does not deduplicate.
func (c *Composer) AudienceSize() int {
	if c.mode == ModeAll {
		return len(c.dir.Executors()) + c.dir.TotalMembers()
	}
	size := len(c.executors)
	for id := range c.segments {
		// Toggle only admits known segments.
		s, _ := c.dir.Segment(id)
		size += s.MemberCount
	}
	return size
}

// Build checks the draft and returns the request for it.
func (c *Composer) Build() (CreateBatchRequest, error) {
	details := c.Details
	details.TaskName = strings.TrimSpace(details.TaskName)
	if details.TaskName == "" {
		return CreateBatchRequest{}, ErrMissingTaskName
	}
	for _, tod := range []string{details.DeadlineTime, details.ExecutionTime} {
		if tod == "" {
			continue
		}
		if _, err := time.Parse(timeOfDayLayout, tod); err != nil {
			return CreateBatchRequest{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, tod)
		}
	}
	if details.Remote {
		details.Location = ""
	}

	req := CreateBatchRequest{
		ID:           ulid.Make().String(),
		Details:      details,
		Tags:         c.Tags(),
		Mode:         c.mode,
		AudienceSize: c.AudienceSize(),
	}
	if c.mode == ModeExecutor {
		req.ExecutorIDs = c.ExecutorIDs()
		req.SegmentIDs = c.SegmentIDs()
		if len(req.ExecutorIDs) == 0 && len(req.SegmentIDs) == 0 {
			return CreateBatchRequest{}, ErrNoRecipients
		}
	}
	return req, nil
}

// Submit builds the request and hands it to creator.
func (c *Composer) Submit(ctx context.Context, creator BatchCreator) (CreateBatchRequest, error) {
	if creator == nil {
		return CreateBatchRequest{}, ErrNoCreator
	}
	req, err := c.Build()
	if err != nil {
		return CreateBatchRequest{}, err
	}
	if err = creator.CreateBatch(ctx, req); err != nil {
		return CreateBatchRequest{}, fmt.Errorf("creating batch %q: %w", req.Details.TaskName, err)
	}
	return req, nil
}

// LogCreator records requests in the context logger.
type LogCreator struct{}

// CreateBatch implements BatchCreator.
func (LogCreator) CreateBatch(ctx context.Context, req CreateBatchRequest) error {
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "composer").
		Str("operation", "create_batch").
		Str("request_id", req.ID).
		Str("task_name", req.Details.TaskName).
		Str("mode", string(req.Mode)).
		Ints("executor_ids", req.ExecutorIDs).
		Ints("segment_ids", req.SegmentIDs).
		Int("audience", req.AudienceSize).
		Strs("tags", req.Tags).
		Msg("batch creation requested")
	return nil
}
