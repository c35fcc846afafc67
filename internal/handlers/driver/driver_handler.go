// internal/handlers/driver/driver_handler.go
package driver

import (
	"net/http"
	"strconv"

	driverdom "parkreg-service/internal/domain/driver"
	"parkreg-service/internal/middleware"
	"parkreg-service/internal/pkg/response"
	driversvc "parkreg-service/internal/service/driver"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService *driversvc.Service
	verbose       bool
}

func NewDriverHandler(driverService *driversvc.Service, verbose bool) *DriverHandler {
	return &DriverHandler{driverService: driverService, verbose: verbose}
}

// AddDriver authorizes a driver for one of the applicant's vehicles.
func (h *DriverHandler) AddDriver(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	var req driverdom.CreateDriverRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, "full_name and license_number are required", nil)
		return
	}

	created, err := h.driverService.AddDriver(c.Request.Context(), vehicleID, applicantID, &req)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusCreated, "Driver authorized", gin.H{"driver": created})
}

// ListDrivers lists drivers authorized for one of the applicant's vehicles.
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	drivers, err := h.driverService.ListDrivers(c.Request.Context(), vehicleID, applicantID)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "drivers retrieved", gin.H{"drivers": drivers})
}

// EditDriver updates an authorized driver's details.
func (h *DriverHandler) EditDriver(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	driverID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid driver id", nil)
		return
	}

	var req driverdom.UpdateDriverRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, "full_name and license_number are required", nil)
		return
	}

	updated, err := h.driverService.EditDriver(c.Request.Context(), driverID, applicantID, &req)
	if err != nil {
		response.FromError(c, err, "driver not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "Driver updated", gin.H{"driver": updated})
}

// DeleteDriver removes an authorized driver.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	driverID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid driver id", nil)
		return
	}

	if err := h.driverService.DeleteDriver(c.Request.Context(), driverID, applicantID); err != nil {
		response.FromError(c, err, "driver not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "Driver removed", nil)
}
