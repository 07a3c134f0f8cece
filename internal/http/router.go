package api

import (
	"log"
	stdhttp "net/http"

	intconfig "meraai/internal/config"
	h "meraai/internal/http/handlers"
	"meraai/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := h.AuthHandler{Secret: env.JWTSecret}
	bookings := h.BookingHandler{}
	admin := h.AdminHandler{}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)

		bookingGroup := api.Group("/bookings")
		bookingGroup.Use(middleware.RequireAuth(env.JWTSecret))
		bookingGroup.POST("", bookings.Create)
		bookingGroup.GET("", bookings.List)
		bookingGroup.GET("/:code", bookings.Get)
		bookingGroup.DELETE("/:code", bookings.Cancel)
		bookingGroup.GET("/:code/ticket", bookings.Ticket)

		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.RequireAuth(env.JWTSecret), middleware.RequireRoles("admin"))
		adminGroup.DELETE("/bookings/:code", admin.DeleteBooking)
		adminGroup.DELETE("/bookings", admin.ClearBookings)
	}

	h.SetRouter(r)
	return r
}
