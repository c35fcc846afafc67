// internal/repository/postgres/driver_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"parkreg-service/internal/domain/driver"
	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `id, vehicle_id, applicant_id, full_name, license_number, phone, created_at, updated_at`

func scanDriver(row pgx.Row) (*driver.AuthorizedDriver, error) {
	var d driver.AuthorizedDriver
	err := row.Scan(&d.ID, &d.VehicleID, &d.ApplicantID, &d.FullName, &d.LicenseNumber, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan driver: %w", err)
	}
	return &d, nil
}

// Create inserts an authorized driver
func (r *DriverRepository) Create(ctx context.Context, d *driver.AuthorizedDriver) error {
	query := `
		INSERT INTO authorized_drivers (vehicle_id, applicant_id, full_name, license_number, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, d.VehicleID, d.ApplicantID, d.FullName, d.LicenseNumber, d.Phone).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// FindByID retrieves a driver by ID
func (r *DriverRepository) FindByID(ctx context.Context, id int64) (*driver.AuthorizedDriver, error) {
	query := `SELECT ` + driverColumns + ` FROM authorized_drivers WHERE id = $1`
	return scanDriver(r.db.QueryRow(ctx, query, id))
}

// FindByVehicle retrieves all drivers authorized for a vehicle
func (r *DriverRepository) FindByVehicle(ctx context.Context, vehicleID int64) ([]*driver.AuthorizedDriver, error) {
	query := `SELECT ` + driverColumns + ` FROM authorized_drivers WHERE vehicle_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var out []*driver.AuthorizedDriver
	for rows.Next() {
		var d driver.AuthorizedDriver
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.ApplicantID, &d.FullName, &d.LicenseNumber, &d.Phone, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drivers: %w", err)
	}
	return out, nil
}

// Update edits a driver's details
func (r *DriverRepository) Update(ctx context.Context, d *driver.AuthorizedDriver) error {
	query := `
		UPDATE authorized_drivers
		SET full_name = $1, license_number = $2, phone = $3, updated_at = now()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, d.FullName, d.LicenseNumber, d.Phone, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a driver, returning the number of rows affected
func (r *DriverRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authorized_drivers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete driver: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByVehicleTx cascades driver deletion when a vehicle is removed
func (r *DriverRepository) DeleteByVehicleTx(ctx context.Context, tx vehicle.Tx, vehicleID int64) (int64, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}
	tag, err := ptx.Exec(ctx, `DELETE FROM authorized_drivers WHERE vehicle_id = $1`, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("failed to cascade driver delete: %w", err)
	}
	return tag.RowsAffected(), nil
}
