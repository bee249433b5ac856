package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CabPreapprovalRepository provides access to cab pre-approvals.
// FindActiveByCode only matches active records so verification cannot tell an
// expired or cancelled code apart from one that never existed.
type CabPreapprovalRepository interface {
	CodeChecker
	FindByID(ctx context.Context, id uuid.UUID) (*CabPreapproval, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CabPreapproval, error)
	FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]CabPreapproval, error)
	FindActiveByCode(ctx context.Context, code string) (*CabPreapproval, error)
	// FindDueForExpiry returns active records whose window ended before now
	FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]CabPreapproval, error)
	Save(ctx context.Context, c *CabPreapproval) error
	SaveWithLock(ctx context.Context, c *CabPreapproval) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByState(ctx context.Context, state State) (int64, error)
}

// DeliveryPassRepository provides access to delivery passes
type DeliveryPassRepository interface {
	CodeChecker
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryPass, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DeliveryPass, error)
	FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]DeliveryPass, error)
	FindActiveByCode(ctx context.Context, code string) (*DeliveryPass, error)
	FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]DeliveryPass, error)
	Save(ctx context.Context, p *DeliveryPass) error
	SaveWithLock(ctx context.Context, p *DeliveryPass) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByState(ctx context.Context, state State) (int64, error)
}

// GuestInviteRepository provides access to guest invites
type GuestInviteRepository interface {
	CodeChecker
	FindByID(ctx context.Context, id uuid.UUID) (*GuestInvite, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]GuestInvite, error)
	FindByHost(ctx context.Context, hostID uuid.UUID, filter shared.Filter) ([]GuestInvite, error)
	FindActiveByCode(ctx context.Context, otp string) (*GuestInvite, error)
	FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]GuestInvite, error)
	Save(ctx context.Context, g *GuestInvite) error
	SaveWithLock(ctx context.Context, g *GuestInvite) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByState(ctx context.Context, state State) (int64, error)
}

// ChildExitPermissionRepository provides access to child exit permissions
type ChildExitPermissionRepository interface {
	CodeChecker
	FindByID(ctx context.Context, id uuid.UUID) (*ChildExitPermission, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ChildExitPermission, error)
	FindByParent(ctx context.Context, parentID uuid.UUID, filter shared.Filter) ([]ChildExitPermission, error)
	FindActiveByCode(ctx context.Context, code string) (*ChildExitPermission, error)
	FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]ChildExitPermission, error)
	Save(ctx context.Context, p *ChildExitPermission) error
	SaveWithLock(ctx context.Context, p *ChildExitPermission) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByState(ctx context.Context, state State) (int64, error)
}
