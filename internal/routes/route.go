package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tessalate/internal/container"
	"github.com/joshua-takyi/tessalate/internal/handlers"
	"github.com/joshua-takyi/tessalate/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "tessalate-api",
				"store":   container.Config.StoreBackend,
			})
		})
	}

	eventRoutes := api.Group("/events")
	{
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		eventRoutes.POST("/:id/availability", handlers.SubmitAvailability(container.EventService))
		eventRoutes.GET("/:id/grid", handlers.GetEventGrid(container.EventService))
		eventRoutes.GET("/:id/slots/:key", handlers.GetSlotDetail(container.EventService))
		eventRoutes.GET("/:id/participants/:name", handlers.GetParticipantAvailability(container.EventService))
	}

	return r
}
