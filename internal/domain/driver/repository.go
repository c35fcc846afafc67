// internal/domain/driver/repository.go
package driver

import (
	"context"

	"parkreg-service/internal/domain/vehicle"
)

type Repository interface {
	Create(ctx context.Context, d *AuthorizedDriver) error
	FindByID(ctx context.Context, id int64) (*AuthorizedDriver, error)
	FindByVehicle(ctx context.Context, vehicleID int64) ([]*AuthorizedDriver, error)
	Update(ctx context.Context, d *AuthorizedDriver) error
	Delete(ctx context.Context, id int64) (int64, error)

	// DeleteByVehicleTx cascades driver removal when a vehicle is deleted.
	DeleteByVehicleTx(ctx context.Context, tx vehicle.Tx, vehicleID int64) (int64, error)
}
