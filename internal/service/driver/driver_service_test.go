package driver

import (
	"context"
	"sort"
	"testing"

	"parkreg-service/internal/domain/driver"
	"parkreg-service/internal/domain/vehicle"
	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubVehicleRepo answers ownership lookups only; the embedded interface
// panics on anything else, which is what we want in these tests.
type stubVehicleRepo struct {
	vehicle.Repository
	vehicles map[int64]*vehicle.Vehicle
}

func (s *stubVehicleRepo) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	c := *v
	return &c, nil
}

type stubDriverRepo struct {
	driver.Repository
	drivers map[int64]*driver.AuthorizedDriver
	nextID  int64
}

func (s *stubDriverRepo) Create(ctx context.Context, d *driver.AuthorizedDriver) error {
	s.nextID++
	d.ID = s.nextID
	c := *d
	s.drivers[d.ID] = &c
	return nil
}

func (s *stubDriverRepo) FindByID(ctx context.Context, id int64) (*driver.AuthorizedDriver, error) {
	d, ok := s.drivers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (s *stubDriverRepo) FindByVehicle(ctx context.Context, vehicleID int64) ([]*driver.AuthorizedDriver, error) {
	var out []*driver.AuthorizedDriver
	for _, d := range s.drivers {
		if d.VehicleID != nil && *d.VehicleID == vehicleID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubDriverRepo) Update(ctx context.Context, d *driver.AuthorizedDriver) error {
	if _, ok := s.drivers[d.ID]; !ok {
		return xerrors.ErrNotFound
	}
	c := *d
	s.drivers[d.ID] = &c
	return nil
}

func (s *stubDriverRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.drivers[id]; !ok {
		return 0, nil
	}
	delete(s.drivers, id)
	return 1, nil
}

func newDriverTestService() (*Service, *stubVehicleRepo, *stubDriverRepo) {
	vrepo := &stubVehicleRepo{vehicles: make(map[int64]*vehicle.Vehicle)}
	drepo := &stubDriverRepo{drivers: make(map[int64]*driver.AuthorizedDriver)}
	return NewService(drepo, vrepo, zap.NewNop()), vrepo, drepo
}

func seedOwnedVehicle(vrepo *stubVehicleRepo, id, applicantID int64) {
	vrepo.vehicles[id] = &vehicle.Vehicle{
		ID:          id,
		ApplicantID: applicantID,
		Make:        "Toyota",
		RegNumber:   "XYZ999",
		Status:      vehicle.StatusActive,
	}
}

func TestAddDriver(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 42)

	phone := "0700000001"
	d, err := s.AddDriver(context.Background(), 10, 42, &driver.CreateDriverRequest{
		FullName:      "  Jordan Li ",
		LicenseNumber: " DL-556 ",
		Phone:         &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jordan Li", d.FullName)
	assert.Equal(t, "DL-556", d.LicenseNumber)
	require.NotNil(t, d.VehicleID)
	assert.Equal(t, int64(10), *d.VehicleID)
	assert.Contains(t, drepo.drivers, d.ID)
}

func TestAddDriverValidation(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 42)

	_, err := s.AddDriver(context.Background(), 10, 42, &driver.CreateDriverRequest{FullName: " ", LicenseNumber: "DL-556"})
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = s.AddDriver(context.Background(), 10, 42, &driver.CreateDriverRequest{FullName: "Jordan Li", LicenseNumber: ""})
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	assert.Empty(t, drepo.drivers)
}

func TestAddDriverVehicleNotOwned(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 7)

	req := &driver.CreateDriverRequest{FullName: "Jordan Li", LicenseNumber: "DL-556"}

	_, err := s.AddDriver(context.Background(), 10, 42, req)
	require.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = s.AddDriver(context.Background(), 9999, 42, req)
	require.ErrorIs(t, err, xerrors.ErrNotFound)

	assert.Empty(t, drepo.drivers)
}

func TestListDrivers(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 42)
	seedOwnedVehicle(vrepo, 11, 42)

	for _, tc := range []struct {
		vehicleID int64
		name      string
	}{{10, "Jordan Li"}, {10, "Sam Okafor"}, {11, "Alex Mutua"}} {
		vid := tc.vehicleID
		require.NoError(t, drepo.Create(context.Background(), &driver.AuthorizedDriver{
			VehicleID: &vid, FullName: tc.name, LicenseNumber: "DL-000",
		}))
	}

	ds, err := s.ListDrivers(context.Background(), 10, 42)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Jordan Li", ds[0].FullName)
	assert.Equal(t, "Sam Okafor", ds[1].FullName)
}

func TestListDriversVehicleNotOwned(t *testing.T) {
	s, vrepo, _ := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 7)

	_, err := s.ListDrivers(context.Background(), 10, 42)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestEditDriver(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 42)
	vid := int64(10)
	d := &driver.AuthorizedDriver{VehicleID: &vid, FullName: "Jordan Li", LicenseNumber: "DL-556"}
	require.NoError(t, drepo.Create(context.Background(), d))

	phone := "0700000002"
	updated, err := s.EditDriver(context.Background(), d.ID, 42, &driver.UpdateDriverRequest{
		FullName:      "Jordan K. Li",
		LicenseNumber: "DL-557",
		Phone:         &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jordan K. Li", updated.FullName)
	assert.Equal(t, "DL-557", drepo.drivers[d.ID].LicenseNumber)
	require.NotNil(t, drepo.drivers[d.ID].Phone)
	assert.Equal(t, "0700000002", *drepo.drivers[d.ID].Phone)
}

func TestEditDriverNotOwned(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 7)
	vid := int64(10)
	d := &driver.AuthorizedDriver{VehicleID: &vid, FullName: "Jordan Li", LicenseNumber: "DL-556"}
	require.NoError(t, drepo.Create(context.Background(), d))

	_, err := s.EditDriver(context.Background(), d.ID, 42, &driver.UpdateDriverRequest{
		FullName: "Changed", LicenseNumber: "DL-999",
	})
	require.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Equal(t, "Jordan Li", drepo.drivers[d.ID].FullName)
}

func TestEditDriverLegacyApplicantLink(t *testing.T) {
	s, _, drepo := newDriverTestService()
	applicantID := int64(42)
	d := &driver.AuthorizedDriver{ApplicantID: &applicantID, FullName: "Jordan Li", LicenseNumber: "DL-556"}
	require.NoError(t, drepo.Create(context.Background(), d))

	_, err := s.EditDriver(context.Background(), d.ID, 42, &driver.UpdateDriverRequest{
		FullName: "Jordan K. Li", LicenseNumber: "DL-557",
	})
	require.NoError(t, err)

	_, err = s.EditDriver(context.Background(), d.ID, 7, &driver.UpdateDriverRequest{
		FullName: "Intruder", LicenseNumber: "DL-000",
	})
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestDeleteDriver(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 42)
	vid := int64(10)
	d := &driver.AuthorizedDriver{VehicleID: &vid, FullName: "Jordan Li", LicenseNumber: "DL-556"}
	require.NoError(t, drepo.Create(context.Background(), d))

	require.NoError(t, s.DeleteDriver(context.Background(), d.ID, 42))
	assert.NotContains(t, drepo.drivers, d.ID)
}

func TestDeleteDriverNotOwned(t *testing.T) {
	s, vrepo, drepo := newDriverTestService()
	seedOwnedVehicle(vrepo, 10, 7)
	vid := int64(10)
	d := &driver.AuthorizedDriver{VehicleID: &vid, FullName: "Jordan Li", LicenseNumber: "DL-556"}
	require.NoError(t, drepo.Create(context.Background(), d))

	err := s.DeleteDriver(context.Background(), d.ID, 42)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Contains(t, drepo.drivers, d.ID)
}

func TestDeleteDriverUnknown(t *testing.T) {
	s, _, _ := newDriverTestService()

	err := s.DeleteDriver(context.Background(), 9999, 42)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}
