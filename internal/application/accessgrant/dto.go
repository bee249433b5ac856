package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/google/uuid"
)

// CreateCabPreapprovalRequest carries the inputs for a new cab pre-approval
type CreateCabPreapprovalRequest struct {
	ResidentID    uuid.UUID `json:"resident_id" binding:"required"`
	ResidentName  string    `json:"resident_name"`
	FlatID        uuid.UUID `json:"flat_id"`
	CabCompany    string    `json:"cab_company"`
	VehicleNumber string    `json:"vehicle_number"`
	DriverName    string    `json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	Mode          string    `json:"mode" binding:"required,oneof=ONCE FREQUENT"`

	OnceDate       *time.Time `json:"once_date"`
	OnceStartTime  string     `json:"once_start_time"` // "HH:MM"
	OnceValidHours float64    `json:"once_valid_hours"`

	Validity      string `json:"validity"`
	FreqTimeFrom  string `json:"freq_time_from"` // "HH:MM"
	FreqTimeTo    string `json:"freq_time_to"`   // "HH:MM"
	DaysOfWeek    string `json:"days_of_week"`
	EntriesPerDay int    `json:"entries_per_day"`
}

// CreateDeliveryPassRequest carries the inputs for a new delivery pass.
// Leave-at-gate defaults to true when the field is omitted.
type CreateDeliveryPassRequest struct {
	ResidentID   uuid.UUID `json:"resident_id" binding:"required"`
	ResidentName string    `json:"resident_name"`
	FlatID       uuid.UUID `json:"flat_id"`
	Courier      string    `json:"courier"`
	ParcelCount  int       `json:"parcel_count"`
	Mode         string    `json:"mode" binding:"required,oneof=ONCE FREQUENT"`

	IsSurprise       bool  `json:"is_surprise"`
	AllowLeaveAtGate *bool `json:"allow_leave_at_gate"`

	OnceDate      *time.Time `json:"once_date"`
	OnceStartTime string     `json:"once_start_time"` // "HH:MM"
	ValidFor      string     `json:"valid_for"`       // hour bucket

	Validity      string `json:"validity"`
	FreqTimeFrom  string `json:"freq_time_from"` // "HH:MM"
	FreqTimeTo    string `json:"freq_time_to"`   // "HH:MM"
	DaysOfWeek    string `json:"days_of_week"`
	EntriesPerDay int    `json:"entries_per_day"`
}

// GuestLineRequest is one named guest on an invite
type GuestLineRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreateGuestInviteRequest carries the inputs for a new guest invite
type CreateGuestInviteRequest struct {
	HostID     uuid.UUID          `json:"host_id" binding:"required"`
	HostName   string             `json:"host_name"`
	FlatID     uuid.UUID          `json:"flat_id"`
	GuestName  string             `json:"guest_name" binding:"required"`
	GuestCount int                `json:"guest_count"`
	Guests     []GuestLineRequest `json:"guests"`
	Private    bool               `json:"private"`
	Note       string             `json:"note"`
	Mode       string             `json:"mode" binding:"required,oneof=ONCE FREQUENT"`

	OnceDate       *time.Time `json:"once_date"`
	OnceStartTime  string     `json:"once_start_time"` // "HH:MM"
	OnceValidHours float64    `json:"once_valid_hours"`

	StayStartDate *time.Time `json:"stay_start_date"`
	StayEndDate   *time.Time `json:"stay_end_date"`
	StayDuration  string     `json:"stay_duration"`
}

// CreateChildExitRequest carries the inputs for a new child exit permission
type CreateChildExitRequest struct {
	ParentID        uuid.UUID `json:"parent_id" binding:"required"`
	ParentName      string    `json:"parent_name"`
	FlatID          uuid.UUID `json:"flat_id"`
	ChildName       string    `json:"child_name" binding:"required"`
	ChildAge        int       `json:"child_age"`
	EscortName      string    `json:"escort_name"`
	Purpose         string    `json:"purpose" binding:"required"`
	AllowedExitTime time.Time `json:"allowed_exit_time" binding:"required"`
	Duration        string    `json:"duration" binding:"required"`
	CustomHours     float64   `json:"custom_hours"`
}

// GrantListFilter carries list query parameters shared by the grant entities
type GrantListFilter struct {
	State      string `form:"state"`
	ResidentID string `form:"resident_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// GrantSummaryResponse is the dashboard count of grants by state
type GrantSummaryResponse struct {
	Draft     int64 `json:"draft"`
	Active    int64 `json:"active"`
	Used      int64 `json:"used"`
	Expired   int64 `json:"expired"`
	Cancelled int64 `json:"cancelled"`
}

// summarizeStates tallies counts for every lifecycle state
func summarizeStates(ctx context.Context, count func(context.Context, accessgrant.State) (int64, error)) (*GrantSummaryResponse, error) {
	out := &GrantSummaryResponse{}
	for state, dst := range map[accessgrant.State]*int64{
		accessgrant.StateDraft:     &out.Draft,
		accessgrant.StateActive:    &out.Active,
		accessgrant.StateUsed:      &out.Used,
		accessgrant.StateExpired:   &out.Expired,
		accessgrant.StateCancelled: &out.Cancelled,
	} {
		n, err := count(ctx, state)
		if err != nil {
			return nil, err
		}
		*dst = n
	}
	return out, nil
}

// GrantResponse is the API shape shared by all grant entities
type GrantResponse struct {
	ID           uuid.UUID  `json:"id"`
	EntityType   string     `json:"entity_type"`
	ResidentID   uuid.UUID  `json:"resident_id"`
	ResidentName string     `json:"resident_name"`
	Mode         string     `json:"mode"`
	State        string     `json:"state"`
	AccessCode   string     `json:"access_code,omitempty"`
	WindowStart  *time.Time `json:"window_start,omitempty"`
	WindowEnd    *time.Time `json:"window_end,omitempty"`
	// RemainingSeconds is how long the grant is still usable, zero if the
	// window is closed or not yet computed
	RemainingSeconds int64     `json:"remaining_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

func windowTimes(w accessgrant.Window) (*time.Time, *time.Time) {
	if w.IsZero() {
		return nil, nil
	}
	start, end := w.Start, w.End
	return &start, &end
}

// ToCabResponse maps a cab pre-approval to the shared grant shape
func ToCabResponse(c *accessgrant.CabPreapproval, now time.Time) *GrantResponse {
	start, end := windowTimes(c.Window())
	return &GrantResponse{
		ID:               c.ID,
		EntityType:       accessgrant.AggregateCabPreapproval,
		ResidentID:       c.ResidentID,
		ResidentName:     c.ResidentName,
		Mode:             c.Mode.String(),
		State:            c.State.String(),
		AccessCode:       c.AccessCode,
		WindowStart:      start,
		WindowEnd:        end,
		RemainingSeconds: int64(c.Window().Remaining(now).Seconds()),
		CreatedAt:        c.CreatedAt,
	}
}

// ToDeliveryResponse maps a delivery pass to the shared grant shape
func ToDeliveryResponse(p *accessgrant.DeliveryPass, now time.Time) *GrantResponse {
	start, end := windowTimes(p.Window())
	return &GrantResponse{
		ID:               p.ID,
		EntityType:       accessgrant.AggregateDeliveryPass,
		ResidentID:       p.ResidentID,
		ResidentName:     p.ResidentName,
		Mode:             p.Mode.String(),
		State:            p.State.String(),
		AccessCode:       p.AccessCode,
		WindowStart:      start,
		WindowEnd:        end,
		RemainingSeconds: int64(p.Window().Remaining(now).Seconds()),
		CreatedAt:        p.CreatedAt,
	}
}

// ToGuestResponse maps a guest invite to the shared grant shape
func ToGuestResponse(g *accessgrant.GuestInvite, now time.Time) *GrantResponse {
	start, end := windowTimes(g.Window())
	return &GrantResponse{
		ID:               g.ID,
		EntityType:       accessgrant.AggregateGuestInvite,
		ResidentID:       g.HostID,
		ResidentName:     g.HostName,
		Mode:             g.Mode.String(),
		State:            g.State.String(),
		AccessCode:       g.OTP,
		WindowStart:      start,
		WindowEnd:        end,
		RemainingSeconds: int64(g.Window().Remaining(now).Seconds()),
		CreatedAt:        g.CreatedAt,
	}
}

// ToChildExitResponse maps a child exit permission to the shared grant shape
func ToChildExitResponse(p *accessgrant.ChildExitPermission, now time.Time) *GrantResponse {
	start, end := windowTimes(p.Window())
	return &GrantResponse{
		ID:               p.ID,
		EntityType:       accessgrant.AggregateChildExitPermission,
		ResidentID:       p.ParentID,
		ResidentName:     p.ParentName,
		Mode:             accessgrant.ModeOnce.String(),
		State:            p.State.String(),
		AccessCode:       p.AccessCode,
		WindowStart:      start,
		WindowEnd:        end,
		RemainingSeconds: int64(p.Window().Remaining(now).Seconds()),
		CreatedAt:        p.CreatedAt,
	}
}
