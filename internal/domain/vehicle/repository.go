// internal/domain/vehicle/repository.go
package vehicle

import (
	"context"
	"time"
)

// Tx is a database transaction handle. The lifecycle coordinator only ever
// commits or rolls back; statement execution goes through the ...Tx
// repository methods so the coordinator stays testable without a database.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxStarter opens transactions for the coordinator's multi-step operations.
type TxStarter interface {
	BeginTx(ctx context.Context) (Tx, error)
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	FindByRegNumber(ctx context.Context, regNumber string) (*Vehicle, error)
	FindByDiskNumber(ctx context.Context, diskNumber string) (*Vehicle, error)
	FindByApplicant(ctx context.Context, applicantID int64) ([]*Vehicle, error)
	List(ctx context.Context, filter *AdminListFilter) ([]*Vehicle, error)

	// Transaction-scoped variants used inside Add/Delete/AdminToggleStatus.
	// FindActiveByApplicantTx locks the matched rows (SELECT ... FOR UPDATE)
	// so two concurrent operations on the same applicant serialize.
	FindByIDTx(ctx context.Context, tx Tx, id int64) (*Vehicle, error)
	FindActiveByApplicantTx(ctx context.Context, tx Tx, applicantID int64) ([]*Vehicle, error)
	FindMostRecentByApplicantTx(ctx context.Context, tx Tx, applicantID int64) (*Vehicle, error)
	InsertTx(ctx context.Context, tx Tx, v *Vehicle) error
	SetStatusTx(ctx context.Context, tx Tx, ids []int64, status Status, now time.Time) error
	DeleteTx(ctx context.Context, tx Tx, id int64) (int64, error)

	// Single-statement updates; no surrounding transaction needed.
	UpdateFields(ctx context.Context, id int64, makeName, regNumber string, now time.Time) (*Vehicle, error)
	AssignDiskNumber(ctx context.Context, id int64, diskNumber string, now time.Time) (*Vehicle, error)
}
