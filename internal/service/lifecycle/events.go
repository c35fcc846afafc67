// internal/service/lifecycle/events.go
package lifecycle

import "parkreg-service/internal/domain/vehicle"

// Event types pushed to connected UIs after a lifecycle operation commits.
const (
	EventVehicleCreated     = "vehicle.created"
	EventVehicleDeactivated = "vehicle.deactivated"
	EventVehicleReactivated = "vehicle.reactivated"
	EventVehicleDeleted     = "vehicle.deleted"
	EventStatusChanged      = "vehicle.status_changed"
	EventDiskAssigned       = "vehicle.disk_assigned"
)

type Event struct {
	Type        string         `json:"type"`
	VehicleID   int64          `json:"vehicle_id"`
	ApplicantID int64          `json:"applicant_id"`
	Status      vehicle.Status `json:"status,omitempty"`
}

// EventPublisher pushes lifecycle events to connected clients. Publishing
// happens after commit; a slow or absent publisher never blocks an operation.
type EventPublisher interface {
	Publish(event Event)
}
