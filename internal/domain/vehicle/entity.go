package vehicle

// internal/domain/vehicle/entity.go
import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the recognised statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Vehicle represents a registered vehicle in the system
type Vehicle struct {
	ID          int64     `json:"vehicle_id" db:"id"`
	ApplicantID int64     `json:"applicant_id" db:"applicant_id"`
	Make        string    `json:"make" db:"make"`
	RegNumber   string    `json:"regNumber" db:"reg_number"`
	Status      Status    `json:"status" db:"status"`
	DiskNumber  *string   `json:"disk_number,omitempty" db:"disk_number"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FormattedUpdatedAt renders the last-updated timestamp the way the
// registration pages display it.
func (v *Vehicle) FormattedUpdatedAt() string {
	return v.UpdatedAt.Format("02 Jan 2006 15:04")
}
