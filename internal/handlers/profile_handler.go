package handlers

import (
	"net/http"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *services.CreatorProfileService
}

func NewProfileHandler(profileService *services.CreatorProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary Get the authenticated user's creator profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CreatorProfile
// @Failure 404 {object} map[string]string
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.Get(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpsertProfile godoc
// @Summary Create or update the creator profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpsertCreatorProfileRequest true "Profile fields"
// @Success 200 {object} models.CreatorProfile
// @Failure 400 {object} map[string]string
// @Router /profile [put]
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req models.UpsertCreatorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Upsert(middleware.UserID(c), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
