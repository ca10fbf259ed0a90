package handlers

import (
	"net/http"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload godoc
// @Summary Upload a media file
// @Description Stores a recording, logo or banner in object storage. Multipart form with a "file" part; kind and course_id come from form fields.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Media file"
// @Param kind formData string true "Media kind (logo, banner, video, recording)"
// @Param course_id formData string false "Course to attach the asset to"
// @Success 201 {object} models.MediaAsset
// @Failure 400 {object} map[string]string
// @Router /media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = models.MediaKindRecording
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	asset, err := h.mediaService.Upload(
		c.Request.Context(),
		middleware.UserID(c),
		c.PostForm("course_id"),
		kind,
		fileHeader.Filename,
		mimeType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// List godoc
// @Summary List the user's media assets
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /media [get]
func (h *MediaHandler) List(c *gin.Context) {
	pagination := utils.NewPaginationFromQuery(c)

	assets, err := h.mediaService.List(middleware.UserID(c), c.Query("kind"), pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media":      assets,
		"pagination": pagination,
	})
}

// Get godoc
// @Summary Get one media asset
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} models.MediaAsset
// @Failure 404 {object} map[string]string
// @Router /media/{id} [get]
func (h *MediaHandler) Get(c *gin.Context) {
	asset, err := h.mediaService.Get(c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}

	c.JSON(http.StatusOK, asset)
}

// Delete godoc
// @Summary Delete a media asset
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.mediaService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "asset deleted"})
}
