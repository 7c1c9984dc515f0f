package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tourops/internal/handler"
	"tourops/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ReservationHandler *handler.ReservationHandler
	VoucherHandler     *handler.VoucherHandler
	GuideHandler       *handler.GuideHandler
	AgencyHandler      *handler.AgencyHandler
	FeedbackHandler    *handler.FeedbackHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Reservation routes.
		reservations := v1.Group("/reservations")
		{
			reservations.GET("", deps.ReservationHandler.List)
			reservations.POST("", deps.ReservationHandler.Create)
			reservations.GET("/:id", deps.ReservationHandler.Get)
			reservations.POST("/:id/status", deps.ReservationHandler.ChangeStatus)
			reservations.POST("/:id/payment", deps.ReservationHandler.UpdatePayment)
			reservations.GET("/:id/voucher", deps.VoucherHandler.Download)
			reservations.POST("/:id/voucher/send", deps.VoucherHandler.Send)
			reservations.GET("/:id/feedback", deps.FeedbackHandler.GetByReservation)
		}

		// Guide routes.
		guides := v1.Group("/guides")
		{
			guides.GET("", deps.GuideHandler.List)
			guides.POST("", deps.GuideHandler.Create)
			guides.GET("/:id", deps.GuideHandler.Get)
			guides.PUT("/:id", deps.GuideHandler.Update)
		}

		// Agency routes.
		agencies := v1.Group("/agencies")
		{
			agencies.GET("", deps.AgencyHandler.List)
			agencies.POST("", deps.AgencyHandler.Create)
			agencies.GET("/:id", deps.AgencyHandler.Get)
			agencies.PUT("/:id", deps.AgencyHandler.Update)
		}

		// Feedback routes.
		feedback := v1.Group("/feedback")
		{
			feedback.GET("", deps.FeedbackHandler.List)
			feedback.POST("", deps.FeedbackHandler.Submit)
		}
	}

	return router
}
