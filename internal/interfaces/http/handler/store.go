package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	appingestion "github.com/MrFriendly-B-V/OrderSync/internal/application/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/storefront"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/dto"
)

// errMissingInstance marks a webhook whose payload names no instance
var errMissingInstance = errors.New("webhook payload carries no instance id")

// StoreHandler serves the provider-facing endpoints: the install redirect,
// the OAuth grant callback and the order-created webhook.
type StoreHandler struct {
	BaseHandler
	tokens   *appingestion.TokenService
	pipeline *appingestion.Service
	provider *storefront.Client
	logger   *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(
	tokens *appingestion.TokenService,
	pipeline *appingestion.Service,
	provider *storefront.Client,
	logger *zap.Logger,
) *StoreHandler {
	return &StoreHandler{
		tokens:   tokens,
		pipeline: pipeline,
		provider: provider,
		logger:   logger,
	}
}

// Install handles GET /store/install. It mints the single-use state nonce
// and hands back the provider installer URL the merchant should be sent to.
func (h *StoreHandler) Install(c *gin.Context) {
	state, err := h.tokens.BeginInstall(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to begin install", zap.Error(err))
		h.InternalError(c, "Failed to start the install flow")
		return
	}

	h.Success(c, dto.InstallResponse{
		RedirectURL: h.provider.InstallerRedirectURL(c.Query("token"), state.State),
		State:       state.State,
	})
}

// Grant handles GET /store/grant, the provider's OAuth callback. The state
// nonce is burned, the code exchanged and an initial ingestion kicked off
// before the merchant is pointed back at the dashboard.
func (h *StoreHandler) Grant(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "state, code and instanceId are required")
		return
	}

	if err := h.tokens.CompleteGrant(c.Request.Context(), req.State, req.Code, req.InstanceID); err != nil {
		h.logger.Warn("grant callback rejected",
			zap.String("instance_id", req.InstanceID),
			zap.Error(err),
		)
		h.HandleError(c, err)
		return
	}

	// fresh install: pull the existing order history right away
	if _, err := h.pipeline.TriggerIngestion(c.Request.Context(), req.InstanceID); err != nil {
		h.logger.Warn("initial ingestion not started",
			zap.String("instance_id", req.InstanceID),
			zap.Error(err),
		)
	}

	h.Success(c, dto.GrantResponse{RedirectURL: h.provider.DashboardRedirectURL()})
}

// webhookPayload is the JSON carried inside the webhook JWT's data claim
type webhookPayload struct {
	InstanceID string `json:"instanceId"`
}

// OrderCreated handles POST /store/webhooks/order-created. The body is a
// JWT issued by the provider; its data claim holds a JSON-escaped payload
// naming the instance. The signature is not verified, matching the trust
// model of the rest of the callback surface: the instance ID only selects
// whose ingestion to schedule.
func (h *StoreHandler) OrderCreated(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	instanceID, err := decodeWebhookInstanceID(string(body))
	if err != nil {
		h.logger.Warn("undecodable order webhook", zap.Error(err))
		h.BadRequest(c, "Webhook payload could not be decoded")
		return
	}

	if _, err := h.pipeline.TriggerIngestion(c.Request.Context(), instanceID); err != nil {
		// a run already covering this instance will pick the order up
		h.logger.Info("webhook ingestion not started",
			zap.String("instance_id", instanceID),
			zap.Error(err),
		)
	}

	h.Success(c, gin.H{"instance_id": instanceID})
}

// decodeWebhookInstanceID extracts the instance ID from the webhook JWT
func decodeWebhookInstanceID(token string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", err
	}

	raw, ok := claims["data"].(string)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	var payload webhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", err
	}
	if payload.InstanceID == "" {
		return "", errMissingInstance
	}
	return payload.InstanceID, nil
}

// RegisterRoutes registers all store lifecycle routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")
	{
		store.GET("/install", h.Install)
		store.GET("/grant", h.Grant)
		store.POST("/webhooks/order-created", h.OrderCreated)
	}
}
