package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appingestion "github.com/MrFriendly-B-V/OrderSync/internal/application/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/dto"
)

// IngestionHandler exposes the pipeline: triggering runs and inspecting
// their persisted outcomes.
type IngestionHandler struct {
	BaseHandler
	pipeline *appingestion.Service
	logger   *zap.Logger
}

// NewIngestionHandler creates a new IngestionHandler
func NewIngestionHandler(pipeline *appingestion.Service, logger *zap.Logger) *IngestionHandler {
	return &IngestionHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// TriggerRun handles POST /ingestion/:instance_id/runs. The run executes in
// the background; the response carries the pending run for later polling.
func (h *IngestionHandler) TriggerRun(c *gin.Context) {
	instanceID := c.Param("instance_id")
	if instanceID == "" {
		h.BadRequest(c, "instance_id is required")
		return
	}

	run, err := h.pipeline.TriggerIngestion(c.Request.Context(), instanceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, dto.RunResponseFromDomain(run))
}

// ListRuns handles GET /ingestion/:instance_id/runs
func (h *IngestionHandler) ListRuns(c *gin.Context) {
	instanceID := c.Param("instance_id")
	if instanceID == "" {
		h.BadRequest(c, "instance_id is required")
		return
	}

	runs, err := h.pipeline.ListRuns(c.Request.Context(), instanceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.RunListResponseFromDomain(runs))
}

// GetRun handles GET /ingestion/runs/:id
func (h *IngestionHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "run id must be a UUID")
		return
	}

	run, err := h.pipeline.GetRun(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.RunResponseFromDomain(run))
}

// RegisterRoutes registers all ingestion routes
func (h *IngestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ingestion := rg.Group("/ingestion")
	{
		ingestion.POST("/:instance_id/runs", h.TriggerRun)
		ingestion.GET("/:instance_id/runs", h.ListRuns)
		ingestion.GET("/runs/:id", h.GetRun)
	}
}
