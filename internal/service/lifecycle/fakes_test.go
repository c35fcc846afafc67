package lifecycle

import (
	"context"
	"sort"
	"time"

	"parkreg-service/internal/domain/driver"
	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"
)

// fakeStore backs the coordinator with in-memory maps. BeginTx snapshots
// the maps and Rollback restores them, so atomicity is observable in tests.
type fakeStore struct {
	vehicles map[int64]*vehicle.Vehicle
	drivers  map[int64]*driver.AuthorizedDriver
	nextID   int64

	// errOn forces the named method to fail, to exercise rollback paths.
	errOn map[string]error

	snapVehicles map[int64]*vehicle.Vehicle
	snapDrivers  map[int64]*driver.AuthorizedDriver
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles: make(map[int64]*vehicle.Vehicle),
		drivers:  make(map[int64]*driver.AuthorizedDriver),
		nextID:   0,
		errOn:    make(map[string]error),
	}
}

// fakeVehicleRepo and fakeDriverRepo expose the shared store through the
// two repository interfaces.
type fakeVehicleRepo struct{ *fakeStore }
type fakeDriverRepo struct{ *fakeStore }

func (f *fakeStore) fail(method string) error {
	return f.errOn[method]
}

func (f *fakeStore) seedVehicle(applicantID int64, makeName, regNumber string, status vehicle.Status, updatedAt time.Time) *vehicle.Vehicle {
	f.nextID++
	v := &vehicle.Vehicle{
		ID:          f.nextID,
		ApplicantID: applicantID,
		Make:        makeName,
		RegNumber:   regNumber,
		Status:      status,
		UpdatedAt:   updatedAt,
	}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeStore) seedDriver(vehicleID int64, name string) *driver.AuthorizedDriver {
	f.nextID++
	d := &driver.AuthorizedDriver{
		ID:            f.nextID,
		VehicleID:     &vehicleID,
		FullName:      name,
		LicenseNumber: "LIC-0000",
	}
	f.drivers[d.ID] = d
	return d
}

func cloneVehicles(src map[int64]*vehicle.Vehicle) map[int64]*vehicle.Vehicle {
	out := make(map[int64]*vehicle.Vehicle, len(src))
	for id, v := range src {
		c := *v
		out[id] = &c
	}
	return out
}

func cloneDrivers(src map[int64]*driver.AuthorizedDriver) map[int64]*driver.AuthorizedDriver {
	out := make(map[int64]*driver.AuthorizedDriver, len(src))
	for id, d := range src {
		c := *d
		out[id] = &c
	}
	return out
}

// ========== TxStarter ==========

type fakeTx struct {
	store      *fakeStore
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	t.store.snapVehicles = nil
	t.store.snapDrivers = nil
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed || t.rolledBack {
		return nil
	}
	t.rolledBack = true
	if t.store.snapVehicles != nil {
		t.store.vehicles = t.store.snapVehicles
		t.store.drivers = t.store.snapDrivers
		t.store.snapVehicles = nil
		t.store.snapDrivers = nil
	}
	return nil
}

func (f *fakeStore) BeginTx(ctx context.Context) (vehicle.Tx, error) {
	if err := f.fail("BeginTx"); err != nil {
		return nil, err
	}
	f.snapVehicles = cloneVehicles(f.vehicles)
	f.snapDrivers = cloneDrivers(f.drivers)
	return &fakeTx{store: f}, nil
}

// ========== vehicle.Repository ==========

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	if err := f.fail("FindByID"); err != nil {
		return nil, err
	}
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (f *fakeVehicleRepo) FindByRegNumber(ctx context.Context, regNumber string) (*vehicle.Vehicle, error) {
	if err := f.fail("FindByRegNumber"); err != nil {
		return nil, err
	}
	for _, v := range f.vehicles {
		if v.RegNumber == regNumber {
			c := *v
			return &c, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeVehicleRepo) FindByDiskNumber(ctx context.Context, diskNumber string) (*vehicle.Vehicle, error) {
	if err := f.fail("FindByDiskNumber"); err != nil {
		return nil, err
	}
	for _, v := range f.vehicles {
		if v.DiskNumber != nil && *v.DiskNumber == diskNumber {
			c := *v
			return &c, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeVehicleRepo) FindByApplicant(ctx context.Context, applicantID int64) ([]*vehicle.Vehicle, error) {
	if err := f.fail("FindByApplicant"); err != nil {
		return nil, err
	}
	var out []*vehicle.Vehicle
	for _, v := range f.vehicles {
		if v.ApplicantID == applicantID {
			c := *v
			out = append(out, &c)
		}
	}
	sortByRecency(out)
	return out, nil
}

func (f *fakeVehicleRepo) List(ctx context.Context, filter *vehicle.AdminListFilter) ([]*vehicle.Vehicle, error) {
	if err := f.fail("List"); err != nil {
		return nil, err
	}
	var out []*vehicle.Vehicle
	for _, v := range f.vehicles {
		if filter != nil {
			if filter.ApplicantID != nil && v.ApplicantID != *filter.ApplicantID {
				continue
			}
			if filter.Status != "" && v.Status != filter.Status {
				continue
			}
		}
		c := *v
		out = append(out, &c)
	}
	sortByRecency(out)
	return out, nil
}

func (f *fakeVehicleRepo) FindByIDTx(ctx context.Context, tx vehicle.Tx, id int64) (*vehicle.Vehicle, error) {
	if err := f.fail("FindByIDTx"); err != nil {
		return nil, err
	}
	return f.FindByID(ctx, id)
}

func (f *fakeVehicleRepo) FindActiveByApplicantTx(ctx context.Context, tx vehicle.Tx, applicantID int64) ([]*vehicle.Vehicle, error) {
	if err := f.fail("FindActiveByApplicantTx"); err != nil {
		return nil, err
	}
	var out []*vehicle.Vehicle
	for _, v := range f.vehicles {
		if v.ApplicantID == applicantID && v.Status == vehicle.StatusActive {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeVehicleRepo) FindMostRecentByApplicantTx(ctx context.Context, tx vehicle.Tx, applicantID int64) (*vehicle.Vehicle, error) {
	if err := f.fail("FindMostRecentByApplicantTx"); err != nil {
		return nil, err
	}
	var best *vehicle.Vehicle
	for _, v := range f.vehicles {
		if v.ApplicantID != applicantID {
			continue
		}
		if best == nil || v.UpdatedAt.After(best.UpdatedAt) ||
			(v.UpdatedAt.Equal(best.UpdatedAt) && v.ID > best.ID) {
			best = v
		}
	}
	if best == nil {
		return nil, xerrors.ErrNotFound
	}
	c := *best
	return &c, nil
}

func (f *fakeVehicleRepo) InsertTx(ctx context.Context, tx vehicle.Tx, v *vehicle.Vehicle) error {
	if err := f.fail("InsertTx"); err != nil {
		return err
	}
	f.nextID++
	v.ID = f.nextID
	c := *v
	f.vehicles[v.ID] = &c
	return nil
}

func (f *fakeVehicleRepo) SetStatusTx(ctx context.Context, tx vehicle.Tx, ids []int64, status vehicle.Status, now time.Time) error {
	if err := f.fail("SetStatusTx"); err != nil {
		return err
	}
	for _, id := range ids {
		if v, ok := f.vehicles[id]; ok {
			v.Status = status
			v.UpdatedAt = now
		}
	}
	return nil
}

func (f *fakeVehicleRepo) DeleteTx(ctx context.Context, tx vehicle.Tx, id int64) (int64, error) {
	if err := f.fail("DeleteTx"); err != nil {
		return 0, err
	}
	if _, ok := f.vehicles[id]; !ok {
		return 0, nil
	}
	delete(f.vehicles, id)
	return 1, nil
}

func (f *fakeVehicleRepo) UpdateFields(ctx context.Context, id int64, makeName, regNumber string, now time.Time) (*vehicle.Vehicle, error) {
	if err := f.fail("UpdateFields"); err != nil {
		return nil, err
	}
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	v.Make = makeName
	v.RegNumber = regNumber
	v.UpdatedAt = now
	c := *v
	return &c, nil
}

func (f *fakeVehicleRepo) AssignDiskNumber(ctx context.Context, id int64, diskNumber string, now time.Time) (*vehicle.Vehicle, error) {
	if err := f.fail("AssignDiskNumber"); err != nil {
		return nil, err
	}
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	v.DiskNumber = &diskNumber
	v.UpdatedAt = now
	c := *v
	return &c, nil
}

// ========== driver.Repository ==========

func (f *fakeDriverRepo) Create(ctx context.Context, d *driver.AuthorizedDriver) error {
	if err := f.fail("Create"); err != nil {
		return err
	}
	f.nextID++
	d.ID = f.nextID
	c := *d
	f.drivers[d.ID] = &c
	return nil
}

func (f *fakeDriverRepo) FindByID(ctx context.Context, id int64) (*driver.AuthorizedDriver, error) {
	d, ok := f.drivers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (f *fakeDriverRepo) FindByVehicle(ctx context.Context, vehicleID int64) ([]*driver.AuthorizedDriver, error) {
	var out []*driver.AuthorizedDriver
	for _, d := range f.drivers {
		if d.VehicleID != nil && *d.VehicleID == vehicleID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDriverRepo) Update(ctx context.Context, d *driver.AuthorizedDriver) error {
	if _, ok := f.drivers[d.ID]; !ok {
		return xerrors.ErrNotFound
	}
	c := *d
	f.drivers[d.ID] = &c
	return nil
}

func (f *fakeDriverRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.drivers[id]; !ok {
		return 0, nil
	}
	delete(f.drivers, id)
	return 1, nil
}

func (f *fakeDriverRepo) DeleteByVehicleTx(ctx context.Context, tx vehicle.Tx, vehicleID int64) (int64, error) {
	if err := f.fail("DeleteByVehicleTx"); err != nil {
		return 0, err
	}
	var n int64
	for id, d := range f.drivers {
		if d.VehicleID != nil && *d.VehicleID == vehicleID {
			delete(f.drivers, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) activeCount(applicantID int64) int {
	n := 0
	for _, v := range f.vehicles {
		if v.ApplicantID == applicantID && v.Status == vehicle.StatusActive {
			n++
		}
	}
	return n
}

func sortByRecency(vs []*vehicle.Vehicle) {
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].UpdatedAt.Equal(vs[j].UpdatedAt) {
			return vs[i].UpdatedAt.After(vs[j].UpdatedAt)
		}
		return vs[i].ID > vs[j].ID
	})
}

// collectEvents implements EventPublisher for assertions.
type collectEvents struct {
	events []Event
}

func (c *collectEvents) Publish(event Event) {
	c.events = append(c.events, event)
}
