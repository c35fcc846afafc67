// internal/service/driver/driver_service.go
package driver

import (
	"context"
	"strings"

	"parkreg-service/internal/domain/driver"
	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Service manages authorized-driver records. Drivers are created and edited
// independently of the vehicle lifecycle; only cascade deletion ties the two
// together, and that lives in the lifecycle coordinator's transaction.
type Service struct {
	drivers  driver.Repository
	vehicles vehicle.Repository
	logger   *zap.Logger
}

func NewService(drivers driver.Repository, vehicles vehicle.Repository, logger *zap.Logger) *Service {
	return &Service{drivers: drivers, vehicles: vehicles, logger: logger}
}

// ownsVehicle verifies the applicant owns the vehicle; a mismatch reads as
// not found so ids cannot be probed.
func (s *Service) ownsVehicle(ctx context.Context, vehicleID, applicantID int64) error {
	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrNotFound
		}
		return xerrors.Wrap(err, "failed to load vehicle")
	}
	if v.ApplicantID != applicantID {
		return xerrors.ErrNotFound
	}
	return nil
}

// ownsDriver verifies the applicant may manage the driver record, either
// through the linked vehicle or, for legacy rows, the direct applicant link.
func (s *Service) ownsDriver(ctx context.Context, d *driver.AuthorizedDriver, applicantID int64) error {
	if d.VehicleID != nil {
		return s.ownsVehicle(ctx, *d.VehicleID, applicantID)
	}
	if d.ApplicantID != nil && *d.ApplicantID == applicantID {
		return nil
	}
	return xerrors.ErrNotFound
}

// AddDriver authorizes a driver for a vehicle the applicant owns.
func (s *Service) AddDriver(ctx context.Context, vehicleID, applicantID int64, req *driver.CreateDriverRequest) (*driver.AuthorizedDriver, error) {
	fullName := strings.TrimSpace(req.FullName)
	license := strings.TrimSpace(req.LicenseNumber)
	if fullName == "" {
		return nil, xerrors.Validation("driver name is required")
	}
	if license == "" {
		return nil, xerrors.Validation("license number is required")
	}

	if err := s.ownsVehicle(ctx, vehicleID, applicantID); err != nil {
		return nil, err
	}

	d := &driver.AuthorizedDriver{
		VehicleID:     &vehicleID,
		FullName:      fullName,
		LicenseNumber: license,
		Phone:         req.Phone,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, xerrors.Wrap(err, "failed to create driver")
	}

	s.logger.Info("driver added", zap.Int64("driver_id", d.ID), zap.Int64("vehicle_id", vehicleID))
	return d, nil
}

// ListDrivers returns drivers authorized for a vehicle the applicant owns.
func (s *Service) ListDrivers(ctx context.Context, vehicleID, applicantID int64) ([]*driver.AuthorizedDriver, error) {
	if err := s.ownsVehicle(ctx, vehicleID, applicantID); err != nil {
		return nil, err
	}
	return s.drivers.FindByVehicle(ctx, vehicleID)
}

// EditDriver updates a driver record the applicant may manage.
func (s *Service) EditDriver(ctx context.Context, driverID, applicantID int64, req *driver.UpdateDriverRequest) (*driver.AuthorizedDriver, error) {
	fullName := strings.TrimSpace(req.FullName)
	license := strings.TrimSpace(req.LicenseNumber)
	if fullName == "" {
		return nil, xerrors.Validation("driver name is required")
	}
	if license == "" {
		return nil, xerrors.Validation("license number is required")
	}

	d, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Wrap(err, "failed to load driver")
	}
	if err := s.ownsDriver(ctx, d, applicantID); err != nil {
		return nil, err
	}

	d.FullName = fullName
	d.LicenseNumber = license
	d.Phone = req.Phone
	if err := s.drivers.Update(ctx, d); err != nil {
		return nil, xerrors.Wrap(err, "failed to update driver")
	}

	s.logger.Info("driver edited", zap.Int64("driver_id", driverID))
	return d, nil
}

// DeleteDriver removes a driver record the applicant may manage.
func (s *Service) DeleteDriver(ctx context.Context, driverID, applicantID int64) error {
	d, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrNotFound
		}
		return xerrors.Wrap(err, "failed to load driver")
	}
	if err := s.ownsDriver(ctx, d, applicantID); err != nil {
		return err
	}

	affected, err := s.drivers.Delete(ctx, driverID)
	if err != nil {
		return xerrors.Wrap(err, "failed to delete driver")
	}
	if affected == 0 {
		return xerrors.ErrNotFound
	}

	s.logger.Info("driver deleted", zap.Int64("driver_id", driverID))
	return nil
}
