package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/youvit/gramedia-display-backend/config"
	"github.com/youvit/gramedia-display-backend/internal/app/controller"
	"github.com/youvit/gramedia-display-backend/internal/middleware"
)

type Router struct {
	healthController     *controller.HealthController
	catalogController    *controller.CatalogController
	submissionController *controller.SubmissionController
	config               *config.Config
}

func NewRouter(
	healthController *controller.HealthController,
	catalogController *controller.CatalogController,
	submissionController *controller.SubmissionController,
	cfg *config.Config,
) *Router {
	return &Router{
		healthController:     healthController,
		catalogController:    catalogController,
		submissionController: submissionController,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(requestTimeout(r.config.Server.RequestTimeout))

	router.MaxMultipartMemory = r.config.Server.MaxUploadBytes

	router.GET("/health", r.healthController.Check)

	v1 := router.Group("/api/v1")
	{
		stores := v1.Group("/stores")
		{
			stores.GET("", r.catalogController.ListStores)
			stores.POST("", r.catalogController.AddStore)
		}

		employees := v1.Group("/employees")
		{
			employees.GET("", r.catalogController.ListEmployees)
			employees.POST("", r.catalogController.AddEmployee)
		}

		submissions := v1.Group("/submissions")
		{
			submissions.POST("", r.submissionController.Create)
		}
	}

	return router
}

// requestTimeout bounds every request so a stalled sheet or bucket call
// cannot hold a handler forever.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
