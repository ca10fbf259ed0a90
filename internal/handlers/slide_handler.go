package handlers

import (
	"net/http"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type SlideHandler struct {
	slideService *services.SlideService
}

func NewSlideHandler(slideService *services.SlideService) *SlideHandler {
	return &SlideHandler{slideService: slideService}
}

// GenerateSlides godoc
// @Summary Generate a slide deck from a lesson script
// @Description Asks the model for structured slides; when the response is missing or malformed a deterministic deck is synthesized from the script. The response carries the provenance of the result.
// @Tags slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateSlidesRequest true "Slide generation parameters"
// @Success 200 {object} models.GenerateSlidesResponse
// @Failure 400 {object} map[string]string
// @Router /slides/generate [post]
func (h *SlideHandler) GenerateSlides(c *gin.Context) {
	var req models.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slides, provenance := h.slideService.GenerateSlides(c.Request.Context(), &req)

	c.JSON(http.StatusOK, models.GenerateSlidesResponse{
		Success:    true,
		Provenance: provenance,
		Slides:     slides,
	})
}
