package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/handlers"
	"github.com/sarukeshwar2016/Inclusicity/internal/api/middleware"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application, allowedOrigins []string) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Auth endpoints
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", h.Signup)
			authGroup.POST("/signup/helper", h.SignupHelper)
			authGroup.POST("/login", h.Login)

			authed := authGroup.Group("")
			authed.Use(middleware.Authenticate(h.Tokens))
			{
				authed.GET("/me", h.Me)
				authed.PATCH("/helper/availability",
					middleware.RequireRole(account.RoleHelper), h.ToggleAvailability)
			}
		}

		// Request lifecycle endpoints
		requests := v1.Group("/requests")
		requests.Use(middleware.Authenticate(h.Tokens))
		{
			requests.POST("", middleware.RequireRole(account.RoleRequester), h.CreateRequest)
			requests.GET("/available", middleware.RequireRole(account.RoleHelper), h.AvailableRequests)
			requests.GET("/my", h.MyRequests)
			requests.PATCH("/:id/accept", middleware.RequireRole(account.RoleHelper), h.AcceptRequest)
			requests.PATCH("/:id/complete", middleware.RequireRole(account.RoleHelper), h.CompleteRequest)
			requests.PATCH("/:id/cancel", middleware.RequireRole(account.RoleRequester), h.CancelRequest)
			requests.PATCH("/:id/cancel/helper", middleware.RequireRole(account.RoleHelper), h.CancelAssignment)
		}

		// Rating endpoints
		ratings := v1.Group("/ratings")
		ratings.Use(middleware.Authenticate(h.Tokens))
		{
			ratings.POST("", middleware.RequireRole(account.RoleRequester), h.CreateRating)
			ratings.GET("/my", middleware.RequireRole(account.RoleHelper), h.MyRatings)
		}

		// Admin endpoints
		admin := v1.Group("/admin")
		admin.Use(middleware.Authenticate(h.Tokens), middleware.RequireRole(account.RoleAdmin))
		{
			admin.GET("/stats", h.AdminStats)
			admin.GET("/helpers/pending", h.PendingHelpers)
			admin.PATCH("/helpers/:id/verify", h.VerifyHelper)
		}

		// Emergency alert
		v1.POST("/sos", middleware.Authenticate(h.Tokens), h.RaiseSOS)

		// Voice room signaling (token verified in-handler; see VoiceWS)
		voice := v1.Group("/voice")
		{
			voice.GET("/ws", h.VoiceWS)
			voice.GET("/rooms", middleware.Authenticate(h.Tokens), h.VoiceRooms)
		}
	}
}
