package vehicle

// internal/domain/vehicle/dto.go

// View is the wire shape of a vehicle as the registration UI expects it.
type View struct {
	VehicleID            int64   `json:"vehicle_id"`
	Make                 string  `json:"make"`
	RegNumber            string  `json:"regNumber"`
	Status               Status  `json:"status"`
	DiskNumber           *string `json:"disk_number,omitempty"`
	FormattedLastUpdated string  `json:"formatted_last_updated"`
}

// NewView maps a vehicle record to its wire shape.
func NewView(v *Vehicle) *View {
	return &View{
		VehicleID:            v.ID,
		Make:                 v.Make,
		RegNumber:            v.RegNumber,
		Status:               v.Status,
		DiskNumber:           v.DiskNumber,
		FormattedLastUpdated: v.FormattedUpdatedAt(),
	}
}

// Views maps a slice of vehicles to wire shapes.
func Views(vs []*Vehicle) []*View {
	out := make([]*View, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewView(v))
	}
	return out
}

// AddResult is what AddVehicle returns: the created record plus the ids
// that were deactivated as a side effect, so the caller can sync its view
// without a reload.
type AddResult struct {
	Vehicle        *Vehicle
	DeactivatedIDs []int64
	Summary        string
}

// DeleteResult reports a successful delete. ReactivatedID is set when a
// remaining vehicle was promoted back to active.
type DeleteResult struct {
	ReactivatedID *int64
}

// ToggleResult is what AdminToggleStatus returns. DeactivatedIDs lists the
// owner's other vehicles that were deactivated when the target was
// activated; empty on deactivation.
type ToggleResult struct {
	Vehicle        *Vehicle
	DeactivatedIDs []int64
}

// AdminListFilter narrows the admin console listing.
type AdminListFilter struct {
	ApplicantID *int64
	RegNumber   string
	Status      Status
}
