package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	h "github.com/dedekindkali/FFF/internal/http/handlers"
	"github.com/dedekindkali/FFF/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)
	h.AdminPasswordHash = env.AdminPasswordHash
	h.PhoneRegion = env.PhoneRegion

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/signup", h.Signup)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.Auth(), h.Me)

		private := api.Group("", middleware.Auth())
		{
			private.GET("/attendance", h.GetAttendance)
			private.POST("/attendance", h.SaveAttendance)
			private.GET("/participants", h.GetParticipants)

			rides := private.Group("/rides")
			rides.GET("", h.GetRides)
			rides.POST("", h.CreateRide)
			rides.GET("/join-requests", h.GetJoinRequestsForDriver)
			rides.POST("/join-requests/:id/respond", h.RespondToJoinRequest)
			rides.PUT("/:id", h.UpdateRide)
			rides.DELETE("/:id", h.DeleteRide)
			rides.POST("/:id/request-join", h.RequestJoin)
			rides.POST("/:id/invite", h.InviteToRide)

			private.GET("/ride-join-status", h.GetJoinStatus)

			requests := private.Group("/ride-requests")
			requests.GET("", h.GetRideRequests)
			requests.POST("", h.CreateRideRequest)
			requests.PUT("/:id", h.UpdateRideRequest)
			requests.DELETE("/:id", h.DeleteRideRequest)

			invitations := private.Group("/ride-invitations")
			invitations.GET("", h.GetInvitations)
			invitations.PUT("/:id/respond", h.RespondToInvitation)

			private.GET("/notifications", h.GetNotifications)
			private.POST("/notifications/:id/read", h.MarkNotificationRead)

			private.POST("/admin/elevate", h.AdminElevate)

			admin := private.Group("/admin", middleware.RequireAdmin())
			admin.GET("/stats", h.AdminStats)
			admin.GET("/users", h.AdminUsers)
			admin.DELETE("/users/:id", h.AdminDeleteUser)
			admin.GET("/export/:type", h.AdminExport)
		}
	}

	return r
}
