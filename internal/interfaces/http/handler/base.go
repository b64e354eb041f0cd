package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/credential"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/shared"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain and pipeline errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, ingestion.ErrRunInProgress):
		h.ErrorWithCode(c, dto.ErrCodeRunInProgress, "An ingestion run is already in progress for this instance")
	case errors.Is(err, ingestion.ErrRunNotFound):
		h.ErrorWithCode(c, dto.ErrCodeNotFound, "Run not found")
	case errors.Is(err, ingestion.ErrNoCredential):
		h.ErrorWithCode(c, dto.ErrCodeNoCredential, "No credential is stored for this instance")
	case errors.Is(err, ingestion.ErrProviderRejected), errors.Is(err, ingestion.ErrAuthRevoked):
		h.ErrorWithCode(c, dto.ErrCodeProviderRejected, "The storefront provider rejected the request")
	case errors.Is(err, ingestion.ErrNetwork):
		h.ErrorWithCode(c, dto.ErrCodeProviderUnreachable, "The storefront provider could not be reached")
	case errors.Is(err, credential.ErrStateExpired):
		h.ErrorWithCode(c, dto.ErrCodeStateExpired, "The install state has expired")
	case errors.Is(err, credential.ErrStateNotFound):
		h.ErrorWithCode(c, dto.ErrCodeStateInvalid, "Unknown or already used install state")
	case errors.Is(err, shared.ErrNotFound):
		h.ErrorWithCode(c, dto.ErrCodeNotFound, "Resource not found")
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
