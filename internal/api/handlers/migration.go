package handlers

import (
	"context"
	"errors"
	"net/http"

	"crickstore/internal/config"
	"crickstore/internal/logger"
	"crickstore/internal/migration"
	"crickstore/internal/services/woocommerce"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingSource = errors.New("source store base URL is not configured")

type MigrationHandler struct {
	orchestrator *migration.Orchestrator
	config       *config.Config
	logger       *logger.Logger
}

func NewMigrationHandler(orchestrator *migration.Orchestrator, cfg *config.Config, logger *logger.Logger) *MigrationHandler {
	return &MigrationHandler{
		orchestrator: orchestrator,
		config:       cfg,
		logger:       logger,
	}
}

type startRequest struct {
	BaseURL        string `json:"base_url"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
}

// Start triggers a migration run. The run executes asynchronously; poll
// GET /migration/progress to follow it.
func (h *MigrationHandler) Start(c *gin.Context) {
	var request startRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	client, err := h.sourceClient(request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reserve the run slot before answering; checking IsRunning and then
	// launching would let concurrent triggers race into the same slot.
	if err := h.orchestrator.Acquire(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A migration is already in progress"})
		return
	}

	migrationID := uuid.New().String()
	go func() {
		result := h.orchestrator.ExecuteAcquired(context.Background(), client)
		h.logger.Info("Migration %s finished: success=%t errors=%d", migrationID, result.Success, result.Stats.Errors)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"migration_id": migrationID,
		"message":      "Migration started",
	})
}

// Progress returns the current progress snapshot. Safe to poll while a run
// is active.
func (h *MigrationHandler) Progress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.orchestrator.Progress()})
}

// TestConnection probes the source store without starting a run.
func (h *MigrationHandler) TestConnection(c *gin.Context) {
	client, err := h.sourceClient(startRequest{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := client.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Source store unreachable", "data": info})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": info})
}

func (h *MigrationHandler) sourceClient(request startRequest) (*woocommerce.Client, error) {
	baseURL := request.BaseURL
	if baseURL == "" {
		baseURL = h.config.WooBaseURL
	}
	if baseURL == "" {
		return nil, errMissingSource
	}

	key := request.ConsumerKey
	if key == "" {
		key = h.config.WooConsumerKey
	}
	secret := request.ConsumerSecret
	if secret == "" {
		secret = h.config.WooConsumerSecret
	}

	return woocommerce.NewClient(baseURL, key, secret, h.config.WooPageSize, h.logger), nil
}
