package ingestion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the lifecycle state of an ingestion run
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSuccess   RunStatus = "SUCCESS"
	RunStatusPartial   RunStatus = "PARTIAL"
	RunStatusFailed    RunStatus = "FAILED"
	RunStatusCancelled RunStatus = "CANCELLED"
)

// IsValid returns true if the status is a known run status
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusPending, RunStatusRunning, RunStatusSuccess,
		RunStatusPartial, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once the run can no longer change state
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSuccess, RunStatusPartial, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of RunStatus
func (s RunStatus) String() string {
	return string(s)
}

// Run records one execution of the ingestion pipeline for an instance:
// refresh, crawl, normalize, write. The counters distinguish orders that
// were written, orders skipped over per-order failures, and failures.
type Run struct {
	ID          uuid.UUID
	InstanceID  string
	Status      RunStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time

	TotalOrders    int
	SucceededCount int
	SkippedCount   int
	FailedCount    int
}

// NewRun creates a pending run for an instance
func NewRun(instanceID string) *Run {
	return &Run{
		ID:         uuid.New(),
		InstanceID: instanceID,
		Status:     RunStatusPending,
		CreatedAt:  time.Now(),
	}
}

// Start marks the run as running
func (r *Run) Start() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
	r.Error = ""
}

// Complete records the final counters and derives the terminal status
func (r *Run) Complete(totalOrders, succeeded, skipped, failed int) {
	now := time.Now()
	r.TotalOrders = totalOrders
	r.SucceededCount = succeeded
	r.SkippedCount = skipped
	r.FailedCount = failed
	r.CompletedAt = &now

	if failed == 0 {
		r.Status = RunStatusSuccess
	} else if succeeded > 0 {
		r.Status = RunStatusPartial
	} else {
		r.Status = RunStatusFailed
	}
}

// Abort records the counters of a run that ended early and derives the
// terminal status: PARTIAL when some orders were already written, FAILED
// otherwise
func (r *Run) Abort(errMsg string, totalOrders, succeeded, skipped, failed int) {
	now := time.Now()
	r.TotalOrders = totalOrders
	r.SucceededCount = succeeded
	r.SkippedCount = skipped
	r.FailedCount = failed
	r.CompletedAt = &now
	r.Error = errMsg
	if succeeded > 0 {
		r.Status = RunStatusPartial
	} else {
		r.Status = RunStatusFailed
	}
}

// Fail marks the run as failed with the given error
func (r *Run) Fail(errMsg string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.CompletedAt = &now
	r.Error = errMsg
}

// Cancel marks the run as cancelled
func (r *Run) Cancel() {
	now := time.Now()
	r.Status = RunStatusCancelled
	r.CompletedAt = &now
	r.Error = ErrCancelled.Error()
}

// RunRepository defines the interface for persisting ingestion runs
type RunRepository interface {
	// Save inserts a new run
	Save(ctx context.Context, run *Run) error

	// Update persists the current state of an existing run
	Update(ctx context.Context, run *Run) error

	// FindByID returns a run by its ID, or ErrRunNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Run, error)

	// ListByInstance returns runs for an instance, newest first
	ListByInstance(ctx context.Context, instanceID string, limit int) ([]Run, error)
}
