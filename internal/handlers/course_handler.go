package handlers

import (
	"fmt"
	"net/http"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/excel"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService    *services.CourseService
	brandingService  *services.BrandingService
	marketingService *services.MarketingService
	excelService     *excel.ExcelService
}

func NewCourseHandler(courseService *services.CourseService, brandingService *services.BrandingService, marketingService *services.MarketingService, excelService *excel.ExcelService) *CourseHandler {
	return &CourseHandler{
		courseService:    courseService,
		brandingService:  brandingService,
		marketingService: marketingService,
		excelService:     excelService,
	}
}

// GenerateCourse godoc
// @Summary Generate a course from a learner outcome
// @Description Asks the model for a course; falls back to a deterministic outline generator when the model is unavailable. The response carries the provenance of the result.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateCourseRequest true "Generation parameters"
// @Success 200 {object} models.GenerateCourseResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /courses/generate [post]
func (h *CourseHandler) GenerateCourse(c *gin.Context) {
	var req models.GenerateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.courseService.GenerateCourse(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCourses godoc
// @Summary List the user's courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	pagination := utils.NewPaginationFromQuery(c)

	items, err := h.courseService.ListCourses(middleware.UserID(c), pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":    items,
		"pagination": pagination,
	})
}

// GetCourse godoc
// @Summary Get one course with its full normalized body
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	record, course, err := h.courseService.GetCourse(c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         record.ID,
		"source":     record.Source,
		"created_at": record.CreatedAt,
		"updated_at": record.UpdatedAt,
		"course":     course,
	})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]string
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseService.DeleteCourse(c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// ExportCourse godoc
// @Summary Export a course outline as an xlsx workbook
// @Tags courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /courses/{id}/export [get]
func (h *CourseHandler) ExportCourse(c *gin.Context) {
	record, course, err := h.courseService.GetCourse(c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	data, err := h.excelService.ExportCourse(course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export course"})
		return
	}

	filename := fmt.Sprintf("course-%s.xlsx", record.ID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GenerateBranding godoc
// @Summary Generate logo and banner artwork for a course
// @Description Asks the model for artwork, falls back to deterministic SVG artwork derived from the title. Uploaded image URLs are saved onto the course.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateBrandingRequest true "Branding parameters"
// @Success 200 {object} models.BrandingResult
// @Failure 400 {object} map[string]string
// @Router /courses/branding [post]
func (h *CourseHandler) GenerateBranding(c *gin.Context) {
	var req models.GenerateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	result := h.brandingService.GenerateBranding(c.Request.Context(), userID, &req)

	if req.CourseID != "" && result.Provenance != models.ProvenanceError {
		if err := h.courseService.SaveBranding(req.CourseID, userID, result); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// GenerateMarketing godoc
// @Summary Generate a marketing description for a course
// @Description No fallback here. When the model fails the request fails, and the client decides whether to retry.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateMarketingRequest true "Marketing parameters"
// @Param course_id query string false "Course to save the description onto"
// @Success 200 {object} models.GenerateMarketingResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /courses/marketing [post]
func (h *CourseHandler) GenerateMarketing(c *gin.Context) {
	var req models.GenerateMarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description, err := h.marketingService.GenerateDescription(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if courseID := c.Query("course_id"); courseID != "" {
		if err := h.courseService.SaveMarketing(courseID, middleware.UserID(c), description); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
	}

	c.JSON(http.StatusOK, models.GenerateMarketingResponse{
		Success:     true,
		Description: description,
	})
}
