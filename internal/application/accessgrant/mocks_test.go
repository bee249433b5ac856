package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCabRepository is a mock implementation of CabPreapprovalRepository
type MockCabRepository struct {
	mock.Mock
}

func (m *MockCabRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCabRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.CabPreapproval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.CabPreapproval), args.Error(1)
}

func (m *MockCabRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.CabPreapproval, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accessgrant.CabPreapproval), args.Error(1)
}

func (m *MockCabRepository) FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]accessgrant.CabPreapproval, error) {
	args := m.Called(ctx, residentID, filter)
	return args.Get(0).([]accessgrant.CabPreapproval), args.Error(1)
}

func (m *MockCabRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.CabPreapproval, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.CabPreapproval), args.Error(1)
}

func (m *MockCabRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.CabPreapproval, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]accessgrant.CabPreapproval), args.Error(1)
}

func (m *MockCabRepository) Save(ctx context.Context, c *accessgrant.CabPreapproval) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCabRepository) SaveWithLock(ctx context.Context, c *accessgrant.CabPreapproval) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCabRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCabRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}

// MockDeliveryRepository is a mock implementation of DeliveryPassRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.DeliveryPass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.DeliveryPass), args.Error(1)
}

func (m *MockDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.DeliveryPass, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accessgrant.DeliveryPass), args.Error(1)
}

func (m *MockDeliveryRepository) FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]accessgrant.DeliveryPass, error) {
	args := m.Called(ctx, residentID, filter)
	return args.Get(0).([]accessgrant.DeliveryPass), args.Error(1)
}

func (m *MockDeliveryRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.DeliveryPass, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.DeliveryPass), args.Error(1)
}

func (m *MockDeliveryRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.DeliveryPass, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]accessgrant.DeliveryPass), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, p *accessgrant.DeliveryPass) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDeliveryRepository) SaveWithLock(ctx context.Context, p *accessgrant.DeliveryPass) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeliveryRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}

// MockGuestRepository is a mock implementation of GuestInviteRepository
type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.GuestInvite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.GuestInvite), args.Error(1)
}

func (m *MockGuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.GuestInvite, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accessgrant.GuestInvite), args.Error(1)
}

func (m *MockGuestRepository) FindByHost(ctx context.Context, hostID uuid.UUID, filter shared.Filter) ([]accessgrant.GuestInvite, error) {
	args := m.Called(ctx, hostID, filter)
	return args.Get(0).([]accessgrant.GuestInvite), args.Error(1)
}

func (m *MockGuestRepository) FindActiveByCode(ctx context.Context, otp string) (*accessgrant.GuestInvite, error) {
	args := m.Called(ctx, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.GuestInvite), args.Error(1)
}

func (m *MockGuestRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.GuestInvite, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]accessgrant.GuestInvite), args.Error(1)
}

func (m *MockGuestRepository) Save(ctx context.Context, g *accessgrant.GuestInvite) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) SaveWithLock(ctx context.Context, g *accessgrant.GuestInvite) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGuestRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}

// MockChildExitRepository is a mock implementation of ChildExitPermissionRepository
type MockChildExitRepository struct {
	mock.Mock
}

func (m *MockChildExitRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockChildExitRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.ChildExitPermission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.ChildExitPermission), args.Error(1)
}

func (m *MockChildExitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.ChildExitPermission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accessgrant.ChildExitPermission), args.Error(1)
}

func (m *MockChildExitRepository) FindByParent(ctx context.Context, parentID uuid.UUID, filter shared.Filter) ([]accessgrant.ChildExitPermission, error) {
	args := m.Called(ctx, parentID, filter)
	return args.Get(0).([]accessgrant.ChildExitPermission), args.Error(1)
}

func (m *MockChildExitRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.ChildExitPermission, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessgrant.ChildExitPermission), args.Error(1)
}

func (m *MockChildExitRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.ChildExitPermission, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]accessgrant.ChildExitPermission), args.Error(1)
}

func (m *MockChildExitRepository) Save(ctx context.Context, p *accessgrant.ChildExitPermission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockChildExitRepository) SaveWithLock(ctx context.Context, p *accessgrant.ChildExitPermission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockChildExitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChildExitRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}
