// internal/service/lifecycle/lifecycle_service.go
package lifecycle

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"parkreg-service/internal/domain/driver"
	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// diskNumberPattern is the allowed character set for physical access disks.
var diskNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Service coordinates vehicle lifecycle operations. Every multi-step
// mutation runs inside a transaction and preserves the rule that an
// applicant has at most one active vehicle at a time.
type Service struct {
	db       vehicle.TxStarter
	vehicles vehicle.Repository
	drivers  driver.Repository
	events   EventPublisher
	logger   *zap.Logger

	now func() time.Time
}

func NewService(
	db vehicle.TxStarter,
	vehicles vehicle.Repository,
	drivers driver.Repository,
	events EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:       db,
		vehicles: vehicles,
		drivers:  drivers,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) publish(evt Event) {
	if s.events != nil {
		s.events.Publish(evt)
	}
}

// AddVehicle registers a new vehicle for an applicant. Any vehicles the
// applicant currently has active are deactivated in the same transaction,
// so the new vehicle is the single active one on commit.
func (s *Service) AddVehicle(ctx context.Context, applicantID int64, makeName, regNumber string) (*vehicle.AddResult, error) {
	makeName = strings.TrimSpace(makeName)
	regNumber = strings.TrimSpace(regNumber)
	if makeName == "" {
		return nil, xerrors.Validation("make is required")
	}
	if regNumber == "" {
		return nil, xerrors.Validation("registration number is required")
	}

	// Uniqueness pre-check across all owners.
	if existing, err := s.vehicles.FindByRegNumber(ctx, regNumber); err == nil && existing != nil {
		return nil, xerrors.ErrDuplicateRegistration
	} else if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check registration number")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	now := s.now()

	actives, err := s.vehicles.FindActiveByApplicantTx(ctx, tx, applicantID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to read active vehicles")
	}

	deactivated := make([]int64, 0, len(actives))
	for _, v := range actives {
		deactivated = append(deactivated, v.ID)
	}
	if err := s.vehicles.SetStatusTx(ctx, tx, deactivated, vehicle.StatusInactive, now); err != nil {
		return nil, xerrors.Wrap(err, "failed to deactivate previous vehicles")
	}

	created := &vehicle.Vehicle{
		ApplicantID: applicantID,
		Make:        makeName,
		RegNumber:   regNumber,
		Status:      vehicle.StatusActive,
		UpdatedAt:   now,
	}
	if err := s.vehicles.InsertTx(ctx, tx, created); err != nil {
		return nil, xerrors.Wrap(err, "failed to insert vehicle")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, xerrors.Wrap(err, "failed to commit transaction")
	}

	summary := fmt.Sprintf("Vehicle %s registered", created.RegNumber)
	if len(deactivated) > 0 {
		summary = fmt.Sprintf("Vehicle %s registered; %d previous vehicle(s) deactivated", created.RegNumber, len(deactivated))
	}

	s.logger.Info("vehicle added",
		zap.Int64("vehicle_id", created.ID),
		zap.Int64("applicant_id", applicantID),
		zap.Int("deactivated", len(deactivated)),
	)

	s.publish(Event{Type: EventVehicleCreated, VehicleID: created.ID, ApplicantID: applicantID, Status: vehicle.StatusActive})
	for _, id := range deactivated {
		s.publish(Event{Type: EventVehicleDeactivated, VehicleID: id, ApplicantID: applicantID, Status: vehicle.StatusInactive})
	}

	return &vehicle.AddResult{
		Vehicle:        created,
		DeactivatedIDs: deactivated,
		Summary:        summary,
	}, nil
}

// EditVehicle updates make and registration number on a vehicle the
// applicant owns. A vehicle owned by someone else reads as not found so
// callers cannot probe which ids exist.
func (s *Service) EditVehicle(ctx context.Context, vehicleID, applicantID int64, makeName, regNumber string) (*vehicle.Vehicle, error) {
	makeName = strings.TrimSpace(makeName)
	regNumber = strings.TrimSpace(regNumber)
	if makeName == "" {
		return nil, xerrors.Validation("make is required")
	}
	if regNumber == "" {
		return nil, xerrors.Validation("registration number is required")
	}

	current, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Wrap(err, "failed to load vehicle")
	}
	if current.ApplicantID != applicantID {
		// Reported identically to a missing vehicle on purpose.
		return nil, xerrors.ErrNotFound
	}

	// Uniqueness check excluding the vehicle itself.
	if existing, err := s.vehicles.FindByRegNumber(ctx, regNumber); err == nil && existing != nil && existing.ID != vehicleID {
		return nil, xerrors.ErrDuplicateRegistration
	} else if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check registration number")
	}

	updated, err := s.vehicles.UpdateFields(ctx, vehicleID, makeName, regNumber, s.now())
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to update vehicle")
	}

	s.logger.Info("vehicle edited", zap.Int64("vehicle_id", vehicleID), zap.Int64("applicant_id", applicantID))
	return updated, nil
}

// DeleteVehicle removes a vehicle the applicant owns, cascading to its
// authorized drivers. If the deleted vehicle was active, the applicant's
// most recently updated remaining vehicle is reactivated so they keep a
// usable active vehicle whenever possible.
func (s *Service) DeleteVehicle(ctx context.Context, vehicleID, applicantID int64) (*vehicle.DeleteResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	target, err := s.vehicles.FindByIDTx(ctx, tx, vehicleID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Wrap(err, "failed to load vehicle")
	}
	if target.ApplicantID != applicantID {
		// Reported identically to a missing vehicle on purpose.
		return nil, xerrors.ErrNotFound
	}
	wasActive := target.Status == vehicle.StatusActive

	if _, err := s.drivers.DeleteByVehicleTx(ctx, tx, vehicleID); err != nil {
		return nil, xerrors.Wrap(err, "failed to remove authorized drivers")
	}

	affected, err := s.vehicles.DeleteTx(ctx, tx, vehicleID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to delete vehicle")
	}
	if affected == 0 {
		return nil, xerrors.ErrDeleteFailed
	}

	var reactivated *int64
	if wasActive {
		next, err := s.vehicles.FindMostRecentByApplicantTx(ctx, tx, applicantID)
		switch {
		case err == nil:
			if err := s.vehicles.SetStatusTx(ctx, tx, []int64{next.ID}, vehicle.StatusActive, s.now()); err != nil {
				return nil, xerrors.Wrap(err, "failed to reactivate vehicle")
			}
			reactivated = &next.ID
		case xerrors.Is(err, xerrors.ErrNotFound):
			// No vehicles remain; nothing to reactivate.
		default:
			return nil, xerrors.Wrap(err, "failed to find replacement vehicle")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, xerrors.Wrap(err, "failed to commit transaction")
	}

	s.logger.Info("vehicle deleted",
		zap.Int64("vehicle_id", vehicleID),
		zap.Int64("applicant_id", applicantID),
		zap.Bool("was_active", wasActive),
	)

	s.publish(Event{Type: EventVehicleDeleted, VehicleID: vehicleID, ApplicantID: applicantID})
	if reactivated != nil {
		s.publish(Event{Type: EventVehicleReactivated, VehicleID: *reactivated, ApplicantID: applicantID, Status: vehicle.StatusActive})
	}

	return &vehicle.DeleteResult{ReactivatedID: reactivated}, nil
}

// AdminToggleStatus sets a vehicle's status without an ownership check.
// Activation still honors the one-active-vehicle rule: the owner's other
// active vehicles are deactivated in the same transaction.
func (s *Service) AdminToggleStatus(ctx context.Context, vehicleID int64, newStatus vehicle.Status) (*vehicle.ToggleResult, error) {
	if !newStatus.Valid() {
		return nil, xerrors.Validation("status must be active or inactive")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	target, err := s.vehicles.FindByIDTx(ctx, tx, vehicleID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Wrap(err, "failed to load vehicle")
	}

	now := s.now()
	var deactivated []int64

	if newStatus == vehicle.StatusActive {
		actives, err := s.vehicles.FindActiveByApplicantTx(ctx, tx, target.ApplicantID)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to read active vehicles")
		}
		for _, v := range actives {
			if v.ID != vehicleID {
				deactivated = append(deactivated, v.ID)
			}
		}
		if err := s.vehicles.SetStatusTx(ctx, tx, deactivated, vehicle.StatusInactive, now); err != nil {
			return nil, xerrors.Wrap(err, "failed to deactivate sibling vehicles")
		}
	}

	if err := s.vehicles.SetStatusTx(ctx, tx, []int64{vehicleID}, newStatus, now); err != nil {
		return nil, xerrors.Wrap(err, "failed to update status")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, xerrors.Wrap(err, "failed to commit transaction")
	}

	target.Status = newStatus
	target.UpdatedAt = now

	s.logger.Info("admin toggled status",
		zap.Int64("vehicle_id", vehicleID),
		zap.String("status", string(newStatus)),
		zap.Int("deactivated", len(deactivated)),
	)

	s.publish(Event{Type: EventStatusChanged, VehicleID: vehicleID, ApplicantID: target.ApplicantID, Status: newStatus})
	for _, id := range deactivated {
		s.publish(Event{Type: EventVehicleDeactivated, VehicleID: id, ApplicantID: target.ApplicantID, Status: vehicle.StatusInactive})
	}

	return &vehicle.ToggleResult{Vehicle: target, DeactivatedIDs: deactivated}, nil
}

// AssignDiskNumber sets the physical access-disk identifier on a vehicle.
// Reassignment is idempotent; a disk number held by a different vehicle is
// rejected.
func (s *Service) AssignDiskNumber(ctx context.Context, vehicleID int64, diskNumber string) (*vehicle.Vehicle, error) {
	diskNumber = strings.TrimSpace(diskNumber)
	if diskNumber == "" || !diskNumberPattern.MatchString(diskNumber) {
		return nil, xerrors.Validation("disk number may only contain letters, digits and hyphens")
	}

	if holder, err := s.vehicles.FindByDiskNumber(ctx, diskNumber); err == nil && holder != nil && holder.ID != vehicleID {
		return nil, xerrors.ErrDuplicateDiskNumber
	} else if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check disk number")
	}

	updated, err := s.vehicles.AssignDiskNumber(ctx, vehicleID, diskNumber, s.now())
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Wrap(err, "failed to assign disk number")
	}

	s.logger.Info("disk number assigned", zap.Int64("vehicle_id", vehicleID), zap.String("disk_number", diskNumber))
	s.publish(Event{Type: EventDiskAssigned, VehicleID: vehicleID, ApplicantID: updated.ApplicantID})
	return updated, nil
}

// ListVehicles returns the applicant's vehicles, most recently updated first.
func (s *Service) ListVehicles(ctx context.Context, applicantID int64) ([]*vehicle.Vehicle, error) {
	return s.vehicles.FindByApplicant(ctx, applicantID)
}

// AdminListVehicles returns vehicles for the admin console.
func (s *Service) AdminListVehicles(ctx context.Context, filter *vehicle.AdminListFilter) ([]*vehicle.Vehicle, error) {
	return s.vehicles.List(ctx, filter)
}
