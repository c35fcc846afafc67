package driver

// internal/domain/driver/entity.go
import "time"

// AuthorizedDriver is a person permitted to drive a registered vehicle.
// VehicleID is nullable because legacy rows were linked straight to the
// applicant before vehicles became the anchor.
type AuthorizedDriver struct {
	ID            int64     `json:"driver_id" db:"id"`
	VehicleID     *int64    `json:"vehicle_id,omitempty" db:"vehicle_id"`
	ApplicantID   *int64    `json:"applicant_id,omitempty" db:"applicant_id"`
	FullName      string    `json:"full_name" db:"full_name"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDriverRequest for adding an authorized driver to a vehicle
type CreateDriverRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	LicenseNumber string  `json:"license_number" binding:"required"`
	Phone         *string `json:"phone"`
}

// UpdateDriverRequest for editing an authorized driver
type UpdateDriverRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	LicenseNumber string  `json:"license_number" binding:"required"`
	Phone         *string `json:"phone"`
}
