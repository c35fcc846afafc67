// internal/app/router.go
package app

import (
	adminHandler "parkreg-service/internal/handlers/admin"
	authHandler "parkreg-service/internal/handlers/auth"
	driverHandler "parkreg-service/internal/handlers/driver"
	vehicleHandler "parkreg-service/internal/handlers/vehicle"
	wsHandler "parkreg-service/internal/handlers/websocket"
	"parkreg-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	VehicleHandler *vehicleHandler.VehicleHandler
	DriverHandler  *driverHandler.DriverHandler
	AdminHandler   *adminHandler.AdminHandler
	AuthHandler    *authHandler.AuthHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
	}
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
	}
	api.POST("/admin/login", h.AuthHandler.AdminLogin)

	// ==================== Vehicles (applicant-scoped) ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware.Auth())
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.POST("/actions", h.VehicleHandler.HandleAction)
		vehicles.GET("/:id/drivers", h.DriverHandler.ListDrivers)
		vehicles.POST("/:id/drivers", h.DriverHandler.AddDriver)
	}

	// ==================== Drivers (applicant-scoped) ====================
	drivers := api.Group("/drivers")
	drivers.Use(h.AuthMiddleware.Auth())
	{
		drivers.PUT("/:id", h.DriverHandler.EditDriver)
		drivers.DELETE("/:id", h.DriverHandler.DeleteDriver)
	}

	// ==================== Admin console ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminAuth())
	{
		admin.GET("/vehicles", h.AdminHandler.ListVehicles)
		admin.PATCH("/vehicles/:id/status", h.AdminHandler.ToggleStatus)
		admin.PATCH("/vehicles/:id/disk", h.AdminHandler.AssignDisk)
	}
}
