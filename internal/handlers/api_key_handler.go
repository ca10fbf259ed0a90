package handlers

import (
	"net/http"
	"strconv"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/api_key"
	"github.com/gin-gonic/gin"
)

type APIKeyHandler struct {
	apiKeyService *api_key.APIKeyService
}

func NewAPIKeyHandler(apiKeyService *api_key.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// CreateKey godoc
// @Summary Create an API key for generation workers
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.APIKey
// @Failure 500 {object} map[string]string
// @Router /api-keys [post]
func (h *APIKeyHandler) CreateKey(c *gin.Context) {
	key, err := h.apiKeyService.CreateKey(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create API key"})
		return
	}

	c.JSON(http.StatusCreated, key)
}

// ListKeys godoc
// @Summary List the user's API keys
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api-keys [get]
func (h *APIKeyHandler) ListKeys(c *gin.Context) {
	keys, err := h.apiKeyService.ListKeys(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list API keys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

// RevokeKey godoc
// @Summary Revoke an API key
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Key ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api-keys/{id} [delete]
func (h *APIKeyHandler) RevokeKey(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}

	if err := h.apiKeyService.RevokeKey(uint(id), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}
