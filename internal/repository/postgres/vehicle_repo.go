// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, applicant_id, make, reg_number, status, disk_number, updated_at`

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(&v.ID, &v.ApplicantID, &v.Make, &v.RegNumber, &v.Status, &v.DiskNumber, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRow(ctx, query, id))
}

// FindByRegNumber retrieves a vehicle by its registration number. The
// match is case-sensitive: registration numbers are stored verbatim.
func (r *VehicleRepository) FindByRegNumber(ctx context.Context, regNumber string) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE reg_number = $1`
	return scanVehicle(r.db.QueryRow(ctx, query, regNumber))
}

// FindByDiskNumber retrieves the vehicle currently holding a disk number
func (r *VehicleRepository) FindByDiskNumber(ctx context.Context, diskNumber string) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE disk_number = $1`
	return scanVehicle(r.db.QueryRow(ctx, query, diskNumber))
}

// FindByApplicant retrieves all vehicles owned by an applicant, most
// recently updated first
func (r *VehicleRepository) FindByApplicant(ctx context.Context, applicantID int64) ([]*vehicle.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE applicant_id = $1
		ORDER BY updated_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return collectVehicles(rows)
}

// List retrieves vehicles for the admin console, with optional filters
func (r *VehicleRepository) List(ctx context.Context, filter *vehicle.AdminListFilter) ([]*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.ApplicantID != nil {
			query += fmt.Sprintf(" AND applicant_id = $%d", argPos)
			args = append(args, *filter.ApplicantID)
			argPos++
		}
		if filter.RegNumber != "" {
			query += fmt.Sprintf(" AND reg_number ILIKE $%d", argPos)
			args = append(args, "%"+filter.RegNumber+"%")
			argPos++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argPos)
			args = append(args, filter.Status)
			argPos++
		}
	}
	query += " ORDER BY updated_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return collectVehicles(rows)
}

func collectVehicles(rows pgx.Rows) ([]*vehicle.Vehicle, error) {
	var out []*vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(&v.ID, &v.ApplicantID, &v.Make, &v.RegNumber, &v.Status, &v.DiskNumber, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vehicles: %w", err)
	}
	return out, nil
}

// ========== Transaction-scoped methods ==========

// FindByIDTx reads a vehicle inside a transaction, locking the row.
func (r *VehicleRepository) FindByIDTx(ctx context.Context, tx vehicle.Tx, id int64) (*vehicle.Vehicle, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return scanVehicle(ptx.QueryRow(ctx, query, id))
}

// FindActiveByApplicantTx reads the applicant's active vehicles inside a
// transaction. Rows are locked so concurrent Add/Delete calls for the same
// applicant serialize instead of both observing the pre-change state.
func (r *VehicleRepository) FindActiveByApplicantTx(ctx context.Context, tx vehicle.Tx, applicantID int64) ([]*vehicle.Vehicle, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE applicant_id = $1 AND status = 'active'
		ORDER BY id
		FOR UPDATE
	`
	rows, err := ptx.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to read active vehicles: %w", err)
	}
	defer rows.Close()

	return collectVehicles(rows)
}

// FindMostRecentByApplicantTx returns the applicant's most recently updated
// vehicle, or ErrNotFound if none remain.
func (r *VehicleRepository) FindMostRecentByApplicantTx(ctx context.Context, tx vehicle.Tx, applicantID int64) (*vehicle.Vehicle, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE applicant_id = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT 1
		FOR UPDATE
	`
	return scanVehicle(ptx.QueryRow(ctx, query, applicantID))
}

// InsertTx creates a vehicle row inside a transaction
func (r *VehicleRepository) InsertTx(ctx context.Context, tx vehicle.Tx, v *vehicle.Vehicle) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO vehicles (applicant_id, make, reg_number, status, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = ptx.QueryRow(ctx, query, v.ApplicantID, v.Make, v.RegNumber, v.Status, v.UpdatedAt).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

// SetStatusTx updates the status of a set of vehicles inside a transaction
func (r *VehicleRepository) SetStatusTx(ctx context.Context, tx vehicle.Tx, ids []int64, status vehicle.Status, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	query := `UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = ANY($3)`
	if _, err := ptx.Exec(ctx, query, status, now, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	return nil
}

// DeleteTx removes a vehicle row inside a transaction, returning the number
// of rows affected
func (r *VehicleRepository) DeleteTx(ctx context.Context, tx vehicle.Tx, id int64) (int64, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}
	tag, err := ptx.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========== Single-statement updates ==========

// UpdateFields updates make and registration number, returning the updated row
func (r *VehicleRepository) UpdateFields(ctx context.Context, id int64, makeName, regNumber string, now time.Time) (*vehicle.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET make = $1, reg_number = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + vehicleColumns
	return scanVehicle(r.db.QueryRow(ctx, query, makeName, regNumber, now, id))
}

// AssignDiskNumber sets the disk number, returning the updated row. The
// write is idempotent: re-assigning the same value is a no-op overwrite.
func (r *VehicleRepository) AssignDiskNumber(ctx context.Context, id int64, diskNumber string, now time.Time) (*vehicle.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET disk_number = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + vehicleColumns
	return scanVehicle(r.db.QueryRow(ctx, query, diskNumber, now, id))
}
