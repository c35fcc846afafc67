// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"
	"strconv"

	vehicledom "parkreg-service/internal/domain/vehicle"
	"parkreg-service/internal/middleware"
	"parkreg-service/internal/pkg/response"
	"parkreg-service/internal/service/lifecycle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin console's privileged vehicle operations.
type AdminHandler struct {
	lifecycleService *lifecycle.Service
	logger           *zap.Logger
	verbose          bool
}

func NewAdminHandler(lifecycleService *lifecycle.Service, logger *zap.Logger, verbose bool) *AdminHandler {
	return &AdminHandler{lifecycleService: lifecycleService, logger: logger, verbose: verbose}
}

type toggleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToggleStatus sets a vehicle's status. Activating a vehicle deactivates
// its owner's other active vehicles.
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	var req toggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "status is required", nil)
		return
	}

	result, err := h.lifecycleService.AdminToggleStatus(c.Request.Context(), vehicleID, vehicledom.Status(req.Status))
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	if adminID, ok := middleware.GetAdminID(c); ok {
		h.logger.Info("admin status change",
			zap.Int64("admin_id", adminID),
			zap.Int64("vehicle_id", vehicleID),
			zap.String("status", req.Status),
		)
	}

	response.Success(c, http.StatusOK, "Status updated", gin.H{
		"vehicle":                 vehicledom.NewView(result.Vehicle),
		"deactivated_vehicle_ids": result.DeactivatedIDs,
	})
}

type assignDiskRequest struct {
	DiskNumber string `json:"disk_number" binding:"required"`
}

// AssignDisk records the physical access-disk identifier for a vehicle.
func (h *AdminHandler) AssignDisk(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	var req assignDiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "disk_number is required", nil)
		return
	}

	updated, err := h.lifecycleService.AssignDiskNumber(c.Request.Context(), vehicleID, req.DiskNumber)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	if adminID, ok := middleware.GetAdminID(c); ok {
		h.logger.Info("admin disk assignment",
			zap.Int64("admin_id", adminID),
			zap.Int64("vehicle_id", vehicleID),
			zap.String("disk_number", req.DiskNumber),
		)
	}

	response.Success(c, http.StatusOK, "Disk number assigned", gin.H{
		"vehicle": vehicledom.NewView(updated),
	})
}

// ListVehicles serves the admin console listing with optional filters.
func (h *AdminHandler) ListVehicles(c *gin.Context) {
	filter := &vehicledom.AdminListFilter{
		RegNumber: c.Query("regNumber"),
		Status:    vehicledom.Status(c.Query("status")),
	}
	if raw := c.Query("applicant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.ValidationError(c, "invalid applicant id", nil)
			return
		}
		filter.ApplicantID = &id
	}

	vehicles, err := h.lifecycleService.AdminListVehicles(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicledom.Views(vehicles),
	})
}
