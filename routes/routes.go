package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pinkmint/handlers"
	"pinkmint/middleware"
)

// RegisterBookingRoutes sets up the endpoints for the booking workflow.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.RateLimitMiddleware())
		bookingGroup.GET("/catalog", h.GetCatalog)
		bookingGroup.POST("/session", h.StartSession)
		bookingGroup.PATCH("/session/:sessionID/draft", h.UpdateDraft)
		bookingGroup.PUT("/session/:sessionID/package", h.SelectPackage)
		bookingGroup.PUT("/session/:sessionID/addon", h.ToggleAddOn)
		bookingGroup.POST("/session/:sessionID/submit", h.Submit)
		bookingGroup.POST("/session/:sessionID/ack", h.Acknowledge)
		bookingGroup.GET("/session/:sessionID/state", h.GetState)
		bookingGroup.DELETE("/session/:sessionID", h.CancelSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Pinkmint"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, h)
}
