package dto

import (
	"time"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
)

// InstallResponse carries the provider installer URL the merchant's browser
// should be sent to
type InstallResponse struct {
	RedirectURL string `json:"redirect_url"`
	State       string `json:"state"`
}

// GrantRequest are the query parameters of the provider's grant callback
type GrantRequest struct {
	State      string `form:"state" binding:"required"`
	Code       string `form:"code" binding:"required"`
	InstanceID string `form:"instanceId" binding:"required"`
}

// GrantResponse points the merchant's browser back at the provider dashboard
type GrantResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// RunResponse is the API shape of an ingestion run
type RunResponse struct {
	ID             string     `json:"id"`
	InstanceID     string     `json:"instance_id"`
	Status         string     `json:"status"`
	Error          string     `json:"error,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	TotalOrders    int        `json:"total_orders"`
	SucceededCount int        `json:"succeeded_count"`
	SkippedCount   int        `json:"skipped_count"`
	FailedCount    int        `json:"failed_count"`
}

// RunResponseFromDomain converts a domain run to its API shape
func RunResponseFromDomain(run *ingestion.Run) RunResponse {
	return RunResponse{
		ID:             run.ID.String(),
		InstanceID:     run.InstanceID,
		Status:         run.Status.String(),
		Error:          run.Error,
		StartedAt:      run.StartedAt,
		CompletedAt:    run.CompletedAt,
		CreatedAt:      run.CreatedAt,
		TotalOrders:    run.TotalOrders,
		SucceededCount: run.SucceededCount,
		SkippedCount:   run.SkippedCount,
		FailedCount:    run.FailedCount,
	}
}

// RunListResponse is a list of runs, newest first
type RunListResponse struct {
	Runs []RunResponse `json:"runs"`
}

// RunListResponseFromDomain converts domain runs to their API shape
func RunListResponseFromDomain(runs []ingestion.Run) RunListResponse {
	out := RunListResponse{Runs: make([]RunResponse, len(runs))}
	for i := range runs {
		out.Runs[i] = RunResponseFromDomain(&runs[i])
	}
	return out
}
