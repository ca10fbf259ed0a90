package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ImranAoufi/coursia-final-mvp-design-sub001/docs"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/handlers"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/api_key"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/auth"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/excel"
)

// Dependencies carries the long-lived services the router wires handlers to.
type Dependencies struct {
	AuthService   *auth.AuthService
	APIKeyService *api_key.APIKeyService
	CourseService *services.CourseService
	SlideService  *services.SlideService
	Branding      *services.BrandingService
	Marketing     *services.MarketingService
	Media         *services.MediaService
	Profile       *services.CreatorProfileService
	Jobs          *services.GenerationJobService
	Hub           *services.SSEHub
	UserRepo      *repository.UserRepository
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(cors.New(corsConfig()))

	r.GET("/heartbeat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"time":        time.Now().UTC(),
			"sse_clients": deps.Hub.ClientCount(),
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.UserRepo)
	apiKeyHandler := handlers.NewAPIKeyHandler(deps.APIKeyService)
	courseHandler := handlers.NewCourseHandler(deps.CourseService, deps.Branding, deps.Marketing, excel.NewExcelService())
	slideHandler := handlers.NewSlideHandler(deps.SlideService)
	jobHandler := handlers.NewJobHandler(deps.Jobs, deps.Hub)
	mediaHandler := handlers.NewMediaHandler(deps.Media)
	profileHandler := handlers.NewProfileHandler(deps.Profile)

	v1 := r.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
			authRoutes.POST("/logout", authHandler.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.BearerTokenAuth(deps.AuthService))
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			protected.POST("/api-keys", apiKeyHandler.CreateKey)
			protected.GET("/api-keys", apiKeyHandler.ListKeys)
			protected.DELETE("/api-keys/:id", apiKeyHandler.RevokeKey)

			protected.POST("/courses/generate", courseHandler.GenerateCourse)
			protected.GET("/courses", courseHandler.ListCourses)
			protected.GET("/courses/:id", courseHandler.GetCourse)
			protected.DELETE("/courses/:id", courseHandler.DeleteCourse)
			protected.GET("/courses/:id/export", courseHandler.ExportCourse)
			protected.POST("/courses/branding", courseHandler.GenerateBranding)
			protected.POST("/courses/marketing", courseHandler.GenerateMarketing)

			protected.POST("/slides/generate", slideHandler.GenerateSlides)

			protected.GET("/jobs", jobHandler.ListJobs)
			protected.GET("/jobs/stream", jobHandler.StreamJobs)
			protected.GET("/jobs/:id", jobHandler.GetJob)

			protected.POST("/media", mediaHandler.Upload)
			protected.GET("/media", mediaHandler.List)
			protected.GET("/media/:id", mediaHandler.Get)
			protected.DELETE("/media/:id", mediaHandler.Delete)

			protected.GET("/profile", profileHandler.GetProfile)
			protected.PUT("/profile", profileHandler.UpsertProfile)
		}

		worker := v1.Group("")
		worker.Use(middleware.APIKeyAuth(deps.APIKeyService))
		{
			worker.POST("/jobs/callback", jobHandler.WorkerCallback)
		}
	}

	return r
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = strings.Split(origins, ",")
	}

	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-API-Key")
	config.AllowCredentials = origins != ""
	return config
}
