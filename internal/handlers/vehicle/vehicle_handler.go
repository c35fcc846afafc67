// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"net/http"
	"strconv"

	vehicledom "parkreg-service/internal/domain/vehicle"
	"parkreg-service/internal/middleware"
	"parkreg-service/internal/pkg/response"
	driversvc "parkreg-service/internal/service/driver"
	"parkreg-service/internal/service/lifecycle"

	"github.com/gin-gonic/gin"
)

// VehicleHandler serves the registration form's single action-dispatched
// endpoint plus the vehicle listing behind it.
type VehicleHandler struct {
	lifecycleService *lifecycle.Service
	driverService    *driversvc.Service
	verbose          bool
}

func NewVehicleHandler(lifecycleService *lifecycle.Service, driverService *driversvc.Service, verbose bool) *VehicleHandler {
	return &VehicleHandler{
		lifecycleService: lifecycleService,
		driverService:    driverService,
		verbose:          verbose,
	}
}

// HandleAction dispatches the form's POST body on its action field.
func (h *VehicleHandler) HandleAction(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	switch c.PostForm("action") {
	case "add":
		h.add(c, applicantID)
	case "edit":
		h.edit(c, applicantID)
	case "delete":
		h.delete(c, applicantID)
	case "delete_driver":
		h.deleteDriver(c, applicantID)
	default:
		response.ValidationError(c, "unknown action", nil)
	}
}

func (h *VehicleHandler) add(c *gin.Context, applicantID int64) {
	result, err := h.lifecycleService.AddVehicle(c.Request.Context(), applicantID, c.PostForm("make"), c.PostForm("regNumber"))
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, result.Summary, gin.H{
		"vehicle":                 vehicledom.NewView(result.Vehicle),
		"deactivated_vehicle_ids": result.DeactivatedIDs,
		"deactivated_count":       len(result.DeactivatedIDs),
	})
}

func (h *VehicleHandler) edit(c *gin.Context, applicantID int64) {
	vehicleID, err := parseID(c.PostForm("id"))
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	updated, err := h.lifecycleService.EditVehicle(c.Request.Context(), vehicleID, applicantID, c.PostForm("make"), c.PostForm("regNumber"))
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "Vehicle updated", gin.H{
		"vehicle": vehicledom.NewView(updated),
	})
}

func (h *VehicleHandler) delete(c *gin.Context, applicantID int64) {
	vehicleID, err := parseID(c.PostForm("id"))
	if err != nil {
		response.ValidationError(c, "invalid vehicle id", nil)
		return
	}

	result, err := h.lifecycleService.DeleteVehicle(c.Request.Context(), vehicleID, applicantID)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	payload := gin.H{}
	if result.ReactivatedID != nil {
		payload["reactivated_vehicle_id"] = *result.ReactivatedID
	}
	response.Success(c, http.StatusOK, "Vehicle deleted", payload)
}

func (h *VehicleHandler) deleteDriver(c *gin.Context, applicantID int64) {
	driverID, err := parseID(c.PostForm("id"))
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

// ListVehicles returns the applicant's vehicles for the registration page.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	vehicles, err := h.lifecycleService.ListVehicles(c.Request.Context(), applicantID)
	if err != nil {
		response.FromError(c, err, "vehicle not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicledom.Views(vehicles),
	})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
