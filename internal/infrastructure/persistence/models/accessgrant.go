package models

import (
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CabPreapprovalModel is the persistence model for cab pre-approvals
type CabPreapprovalModel struct {
	AggregateModel
	ResidentID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ResidentName  string
	FlatID        uuid.UUID `gorm:"type:uuid;index"`
	CabCompany    string
	VehicleNumber string
	DriverName    string
	DriverPhone   string

	Mode string `gorm:"not null"`

	OnceDate       time.Time
	OnceStartTime  float64
	OnceValidHours float64

	Validity      string
	FreqTimeFrom  float64
	FreqTimeTo    float64
	DaysOfWeek    string
	EntriesPerDay int

	WindowStart time.Time
	WindowEnd   time.Time `gorm:"index"`
	AccessCode  string    `gorm:"index"`
	State       string    `gorm:"not null;index"`

	ActivatedAt *time.Time
	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// TableName specifies the table name
func (CabPreapprovalModel) TableName() string {
	return "cab_preapprovals"
}

// CabPreapprovalModelFromDomain converts a domain CabPreapproval to its
// persistence model
func CabPreapprovalModelFromDomain(c *accessgrant.CabPreapproval) *CabPreapprovalModel {
	m := &CabPreapprovalModel{
		ResidentID:     c.ResidentID,
		ResidentName:   c.ResidentName,
		FlatID:         c.FlatID,
		CabCompany:     c.CabCompany,
		VehicleNumber:  c.VehicleNumber,
		DriverName:     c.DriverName,
		DriverPhone:    c.DriverPhone,
		Mode:           string(c.Mode),
		OnceDate:       c.OnceDate,
		OnceStartTime:  float64(c.OnceStartTime),
		OnceValidHours: c.OnceValidHours,
		Validity:       string(c.Validity),
		FreqTimeFrom:   float64(c.FreqTimeFrom),
		FreqTimeTo:     float64(c.FreqTimeTo),
		DaysOfWeek:     c.DaysOfWeek,
		EntriesPerDay:  c.EntriesPerDay,
		WindowStart:    c.WindowStart,
		WindowEnd:      c.WindowEnd,
		AccessCode:     c.AccessCode,
		State:          string(c.State),
		ActivatedAt:    c.ActivatedAt,
		ExpiredAt:      c.ExpiredAt,
		CancelledAt:    c.CancelledAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain CabPreapproval
func (m *CabPreapprovalModel) ToDomain() *accessgrant.CabPreapproval {
	c := &accessgrant.CabPreapproval{
		ResidentID:     m.ResidentID,
		ResidentName:   m.ResidentName,
		FlatID:         m.FlatID,
		CabCompany:     m.CabCompany,
		VehicleNumber:  m.VehicleNumber,
		DriverName:     m.DriverName,
		DriverPhone:    m.DriverPhone,
		Mode:           accessgrant.Mode(m.Mode),
		OnceDate:       m.OnceDate,
		OnceStartTime:  valueobject.TimeOfDay(m.OnceStartTime),
		OnceValidHours: m.OnceValidHours,
		Validity:       accessgrant.Validity(m.Validity),
		FreqTimeFrom:   valueobject.TimeOfDay(m.FreqTimeFrom),
		FreqTimeTo:     valueobject.TimeOfDay(m.FreqTimeTo),
		DaysOfWeek:     m.DaysOfWeek,
		EntriesPerDay:  m.EntriesPerDay,
		WindowStart:    m.WindowStart,
		WindowEnd:      m.WindowEnd,
		AccessCode:     m.AccessCode,
		State:          accessgrant.State(m.State),
		ActivatedAt:    m.ActivatedAt,
		ExpiredAt:      m.ExpiredAt,
		CancelledAt:    m.CancelledAt,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// DeliveryPassModel is the persistence model for delivery passes
type DeliveryPassModel struct {
	AggregateModel
	ResidentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ResidentName string
	FlatID       uuid.UUID `gorm:"type:uuid;index"`
	Courier      string
	ParcelCount  int

	IsSurprise       bool
	AllowLeaveAtGate bool

	Mode string `gorm:"not null"`

	OnceDate      time.Time
	OnceStartTime float64
	ValidFor      string

	Validity      string
	FreqTimeFrom  float64
	FreqTimeTo    float64
	FreqValidTill time.Time
	DaysOfWeek    string
	EntriesPerDay int

	WindowStart time.Time
	WindowEnd   time.Time `gorm:"index"`
	AccessCode  string    `gorm:"index"`
	State       string    `gorm:"not null;index"`

	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// TableName specifies the table name
func (DeliveryPassModel) TableName() string {
	return "delivery_passes"
}

// DeliveryPassModelFromDomain converts a domain DeliveryPass to its
// persistence model
func DeliveryPassModelFromDomain(p *accessgrant.DeliveryPass) *DeliveryPassModel {
	m := &DeliveryPassModel{
		ResidentID:       p.ResidentID,
		ResidentName:     p.ResidentName,
		FlatID:           p.FlatID,
		Courier:          p.Courier,
		ParcelCount:      p.ParcelCount,
		IsSurprise:       p.IsSurprise,
		AllowLeaveAtGate: p.AllowLeaveAtGate,
		Mode:             string(p.Mode),
		OnceDate:         p.OnceDate,
		OnceStartTime:    float64(p.OnceStartTime),
		ValidFor:         string(p.ValidFor),
		Validity:         string(p.Validity),
		FreqTimeFrom:     float64(p.FreqTimeFrom),
		FreqTimeTo:       float64(p.FreqTimeTo),
		FreqValidTill:    p.FreqValidTill,
		DaysOfWeek:       p.DaysOfWeek,
		EntriesPerDay:    p.EntriesPerDay,
		WindowStart:      p.WindowStart,
		WindowEnd:        p.WindowEnd,
		AccessCode:       p.AccessCode,
		State:            string(p.State),
		ExpiredAt:        p.ExpiredAt,
		CancelledAt:      p.CancelledAt,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain DeliveryPass
func (m *DeliveryPassModel) ToDomain() *accessgrant.DeliveryPass {
	p := &accessgrant.DeliveryPass{
		ResidentID:       m.ResidentID,
		ResidentName:     m.ResidentName,
		FlatID:           m.FlatID,
		Courier:          m.Courier,
		ParcelCount:      m.ParcelCount,
		IsSurprise:       m.IsSurprise,
		AllowLeaveAtGate: m.AllowLeaveAtGate,
		Mode:             accessgrant.Mode(m.Mode),
		OnceDate:         m.OnceDate,
		OnceStartTime:    valueobject.TimeOfDay(m.OnceStartTime),
		ValidFor:         accessgrant.HourBucket(m.ValidFor),
		Validity:         accessgrant.Validity(m.Validity),
		FreqTimeFrom:     valueobject.TimeOfDay(m.FreqTimeFrom),
		FreqTimeTo:       valueobject.TimeOfDay(m.FreqTimeTo),
		FreqValidTill:    m.FreqValidTill,
		DaysOfWeek:       m.DaysOfWeek,
		EntriesPerDay:    m.EntriesPerDay,
		WindowStart:      m.WindowStart,
		WindowEnd:        m.WindowEnd,
		AccessCode:       m.AccessCode,
		State:            accessgrant.State(m.State),
		ExpiredAt:        m.ExpiredAt,
		CancelledAt:      m.CancelledAt,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// GuestInviteModel is the persistence model for guest invites
type GuestInviteModel struct {
	AggregateModel
	HostID     uuid.UUID `gorm:"type:uuid;not null;index"`
	HostName   string
	FlatID     uuid.UUID `gorm:"type:uuid;index"`
	GuestName  string    `gorm:"not null"`
	GuestCount int
	Guests     []GuestLineModel `gorm:"foreignKey:InviteID"`

	Private bool
	Note    string

	Mode string `gorm:"not null"`

	OnceDate       time.Time
	OnceStartTime  float64
	OnceValidHours float64

	StayStartDate time.Time
	StayEndDate   time.Time
	StayDuration  string

	WindowStart time.Time
	WindowEnd   time.Time `gorm:"index"`
	OTP         string    `gorm:"column:otp;index"`
	State       string    `gorm:"not null;index"`

	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// TableName specifies the table name
func (GuestInviteModel) TableName() string {
	return "guest_invites"
}

// GuestLineModel is the persistence model for named guests on an invite
type GuestLineModel struct {
	BaseModel
	InviteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Phone    string
}

// TableName specifies the table name
func (GuestLineModel) TableName() string {
	return "guest_invite_lines"
}

// GuestInviteModelFromDomain converts a domain GuestInvite to its persistence
// model
func GuestInviteModelFromDomain(g *accessgrant.GuestInvite) *GuestInviteModel {
	m := &GuestInviteModel{
		HostID:         g.HostID,
		HostName:       g.HostName,
		FlatID:         g.FlatID,
		GuestName:      g.GuestName,
		GuestCount:     g.GuestCount,
		Private:        g.Private,
		Note:           g.Note,
		Mode:           string(g.Mode),
		OnceDate:       g.OnceDate,
		OnceStartTime:  float64(g.OnceStartTime),
		OnceValidHours: g.OnceValidHours,
		StayStartDate:  g.StayStartDate,
		StayEndDate:    g.StayEndDate,
		StayDuration:   string(g.StayDuration),
		WindowStart:    g.WindowStart,
		WindowEnd:      g.WindowEnd,
		OTP:            g.OTP,
		State:          string(g.State),
		ExpiredAt:      g.ExpiredAt,
		CancelledAt:    g.CancelledAt,
	}
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	for _, line := range g.Guests {
		lm := GuestLineModel{
			InviteID: line.InviteID,
			Name:     line.Name,
			Phone:    line.Phone,
		}
		lm.FromDomainBaseEntity(line.BaseEntity)
		m.Guests = append(m.Guests, lm)
	}
	return m
}

// ToDomain converts the persistence model to a domain GuestInvite
func (m *GuestInviteModel) ToDomain() *accessgrant.GuestInvite {
	g := &accessgrant.GuestInvite{
		HostID:         m.HostID,
		HostName:       m.HostName,
		FlatID:         m.FlatID,
		GuestName:      m.GuestName,
		GuestCount:     m.GuestCount,
		Private:        m.Private,
		Note:           m.Note,
		Mode:           accessgrant.Mode(m.Mode),
		OnceDate:       m.OnceDate,
		OnceStartTime:  valueobject.TimeOfDay(m.OnceStartTime),
		OnceValidHours: m.OnceValidHours,
		StayStartDate:  m.StayStartDate,
		StayEndDate:    m.StayEndDate,
		StayDuration:   accessgrant.StayDuration(m.StayDuration),
		WindowStart:    m.WindowStart,
		WindowEnd:      m.WindowEnd,
		OTP:            m.OTP,
		State:          accessgrant.State(m.State),
		ExpiredAt:      m.ExpiredAt,
		CancelledAt:    m.CancelledAt,
	}
	m.PopulateAggregateRoot(&g.BaseAggregateRoot)
	for _, lm := range m.Guests {
		g.Guests = append(g.Guests, accessgrant.GuestLine{
			BaseEntity: lm.BaseModel.ToDomain(),
			InviteID:   lm.InviteID,
			Name:       lm.Name,
			Phone:      lm.Phone,
		})
	}
	return g
}

// ChildExitPermissionModel is the persistence model for child exit permissions
type ChildExitPermissionModel struct {
	AggregateModel
	ParentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ParentName string
	FlatID     uuid.UUID `gorm:"type:uuid;index"`
	ChildName  string    `gorm:"not null"`
	ChildAge   int
	EscortName string
	Purpose    string `gorm:"not null"`

	AllowedExitTime time.Time `gorm:"not null"`
	Duration        string
	CustomHours     float64
	ValidUntil      time.Time `gorm:"not null;index"`

	AccessCode string `gorm:"index"`
	State      string `gorm:"not null;index"`

	ExitTime    *time.Time
	ReturnTime  *time.Time
	ActivatedAt *time.Time
	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// TableName specifies the table name
func (ChildExitPermissionModel) TableName() string {
	return "child_exit_permissions"
}

// ChildExitPermissionModelFromDomain converts a domain ChildExitPermission to
// its persistence model
func ChildExitPermissionModelFromDomain(p *accessgrant.ChildExitPermission) *ChildExitPermissionModel {
	m := &ChildExitPermissionModel{
		ParentID:        p.ParentID,
		ParentName:      p.ParentName,
		FlatID:          p.FlatID,
		ChildName:       p.ChildName,
		ChildAge:        p.ChildAge,
		EscortName:      p.EscortName,
		Purpose:         p.Purpose,
		AllowedExitTime: p.AllowedExitTime,
		Duration:        string(p.Duration),
		CustomHours:     p.CustomHours,
		ValidUntil:      p.ValidUntil,
		AccessCode:      p.AccessCode,
		State:           string(p.State),
		ExitTime:        p.ExitTime,
		ReturnTime:      p.ReturnTime,
		ActivatedAt:     p.ActivatedAt,
		ExpiredAt:       p.ExpiredAt,
		CancelledAt:     p.CancelledAt,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain ChildExitPermission
func (m *ChildExitPermissionModel) ToDomain() *accessgrant.ChildExitPermission {
	p := &accessgrant.ChildExitPermission{
		ParentID:        m.ParentID,
		ParentName:      m.ParentName,
		FlatID:          m.FlatID,
		ChildName:       m.ChildName,
		ChildAge:        m.ChildAge,
		EscortName:      m.EscortName,
		Purpose:         m.Purpose,
		AllowedExitTime: m.AllowedExitTime,
		Duration:        accessgrant.ExitDuration(m.Duration),
		CustomHours:     m.CustomHours,
		ValidUntil:      m.ValidUntil,
		AccessCode:      m.AccessCode,
		State:           accessgrant.State(m.State),
		ExitTime:        m.ExitTime,
		ReturnTime:      m.ReturnTime,
		ActivatedAt:     m.ActivatedAt,
		ExpiredAt:       m.ExpiredAt,
		CancelledAt:     m.CancelledAt,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}
