package applicant

// internal/domain/applicant/entity.go
import (
	"context"
	"time"
)

type RegistrantType string

const (
	TypeStudent RegistrantType = "student"
	TypeStaff   RegistrantType = "staff"
	TypeGuest   RegistrantType = "guest"
)

// Applicant is a registrant who owns zero or more vehicles. Rows are
// created by the onboarding flow; this service only reads them.
type Applicant struct {
	ID             int64          `json:"applicant_id" db:"id"`
	FullName       string         `json:"full_name" db:"full_name"`
	Email          string         `json:"email" db:"email"`
	RegistrantType RegistrantType `json:"registrant_type" db:"registrant_type"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// Admin is a staff account for the admin console.
type Admin struct {
	ID           int64     `json:"admin_id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Applicant, error)
	FindByEmail(ctx context.Context, email string) (*Applicant, error)
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
}
