package lease

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T) *Transaction {
	t.Helper()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 11, 0)
	tx, err := NewTransaction(uuid.New(), uuid.New(), uuid.New(), "A-101", uuid.New(), "Asha Verma", nil,
		decimal.NewFromInt(18000), decimal.NewFromInt(36000), start, end)
	require.NoError(t, err)
	return tx
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		to     Status
		expect bool
	}{
		{"draft to confirmed", StatusDraft, StatusConfirmed, true},
		{"draft to cancelled", StatusDraft, StatusCancelled, true},
		{"draft to expired", StatusDraft, StatusExpired, false},
		{"draft to terminated", StatusDraft, StatusTerminated, false},
		{"confirmed to expired", StatusConfirmed, StatusExpired, true},
		{"confirmed to terminated", StatusConfirmed, StatusTerminated, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to draft", StatusConfirmed, StatusDraft, false},
		{"expired is terminal", StatusExpired, StatusConfirmed, false},
		{"terminated is terminal", StatusTerminated, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewTransaction_Validation(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	tests := []struct {
		name    string
		mutate  func(flatID, tenantID *uuid.UUID, rent, deposit *decimal.Decimal, s, e *time.Time)
		wantErr string
	}{
		{
			name:    "zero rent rejected",
			mutate:  func(_, _ *uuid.UUID, rent, _ *decimal.Decimal, _, _ *time.Time) { *rent = decimal.Zero },
			wantErr: "Monthly rent must be greater than zero",
		},
		{
			name:    "negative deposit rejected",
			mutate:  func(_, _ *uuid.UUID, _, dep *decimal.Decimal, _, _ *time.Time) { *dep = decimal.NewFromInt(-1) },
			wantErr: "Security deposit cannot be negative",
		},
		{
			name:    "missing tenant rejected",
			mutate:  func(_, tenantID *uuid.UUID, _, _ *decimal.Decimal, _, _ *time.Time) { *tenantID = uuid.Nil },
			wantErr: "Tenant is required",
		},
		{
			name:    "missing flat rejected",
			mutate:  func(flatID, _ *uuid.UUID, _, _ *decimal.Decimal, _, _ *time.Time) { *flatID = uuid.Nil },
			wantErr: "Flat is required",
		},
		{
			name:    "end before start rejected",
			mutate:  func(_, _ *uuid.UUID, _, _ *decimal.Decimal, s, e *time.Time) { *e = s.AddDate(0, 0, -1) },
			wantErr: "Lease end date must be after start date",
		},
		{
			name:    "end equal to start rejected",
			mutate:  func(_, _ *uuid.UUID, _, _ *decimal.Decimal, s, e *time.Time) { *e = *s },
			wantErr: "Lease end date must be after start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flatID, tenantID := uuid.New(), uuid.New()
			rent, deposit := decimal.NewFromInt(18000), decimal.NewFromInt(36000)
			s, e := start, end
			tt.mutate(&flatID, &tenantID, &rent, &deposit, &s, &e)

			_, err := NewTransaction(uuid.New(), uuid.New(), flatID, "A-101", tenantID, "Asha Verma", nil, rent, deposit, s, e)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTransaction_StartsInDraft(t *testing.T) {
	tx := newTestTransaction(t)

	assert.Equal(t, StatusDraft, tx.Status)
	assert.False(t, tx.IsConfirmed())
	assert.False(t, tx.SecurityDepositInvoiced)
	assert.Empty(t, tx.InvoicedMonths)

	events := tx.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTransactionCreated, events[0].EventType())
}

func TestTransaction_Confirm(t *testing.T) {
	tx := newTestTransaction(t)
	tx.ClearDomainEvents()

	err := tx.Confirm()

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, tx.Status)
	require.NotNil(t, tx.ConfirmedAt)

	events := tx.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTransactionConfirmed, events[0].EventType())

	// Confirming twice is an invalid transition
	err = tx.Confirm()
	assert.Error(t, err)
}

func TestTransaction_Terminate(t *testing.T) {
	tx := newTestTransaction(t)

	// Cannot terminate a draft lease
	err := tx.Terminate()
	require.Error(t, err)

	require.NoError(t, tx.Confirm())
	err = tx.Terminate()

	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, tx.Status)
	require.NotNil(t, tx.TerminatedAt)
	assert.True(t, tx.IsTerminal())
}

func TestTransaction_Cancel(t *testing.T) {
	t.Run("from draft", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.Cancel())
		assert.Equal(t, StatusCancelled, tx.Status)
	})

	t.Run("from confirmed", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.Confirm())
		tx.ClearDomainEvents()

		require.NoError(t, tx.Cancel())

		events := tx.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*TransactionCancelledEvent)
		require.True(t, ok)
		assert.True(t, cancelled.WasConfirmed)
	})

	t.Run("from terminal state", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.Confirm())
		require.NoError(t, tx.Terminate())
		assert.Error(t, tx.Cancel())
	})
}

func TestTransaction_Expire(t *testing.T) {
	tx := newTestTransaction(t)
	today := tx.LeaseEndDate.AddDate(0, 0, 1)

	// Only confirmed leases expire
	err := tx.Expire(today)
	require.Error(t, err)

	require.NoError(t, tx.Confirm())

	// End date not yet passed
	err = tx.Expire(tx.LeaseEndDate)
	require.Error(t, err)

	err = tx.Expire(today)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, tx.Status)
	require.NotNil(t, tx.ExpiredAt)
}

func TestTransaction_ResetToDraft(t *testing.T) {
	tx := newTestTransaction(t)
	require.NoError(t, tx.Confirm())
	require.NoError(t, tx.Terminate())

	tx.ResetToDraft()

	assert.Equal(t, StatusDraft, tx.Status)
	assert.Nil(t, tx.ConfirmedAt)
	assert.Nil(t, tx.TerminatedAt)
}

func TestTransaction_DurationMonths(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tx, err := NewTransaction(uuid.New(), uuid.New(), uuid.New(), "B-204", uuid.New(), "Rahul Nair", nil,
		decimal.NewFromInt(25000), decimal.NewFromInt(50000), start, start.AddDate(0, 0, 330))
	require.NoError(t, err)

	assert.Equal(t, 11, tx.DurationMonths())
}

func TestTransaction_MonthInvoicingLedger(t *testing.T) {
	tx := newTestTransaction(t)
	require.NoError(t, tx.Confirm())

	key := MonthKey(time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-04", key)
	assert.False(t, tx.IsMonthInvoiced(key))

	require.NoError(t, tx.MarkMonthInvoiced(key))
	assert.True(t, tx.IsMonthInvoiced(key))

	// Second invoice for the same month is rejected
	err := tx.MarkMonthInvoiced(key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been created")

	// Other months are unaffected
	require.NoError(t, tx.MarkMonthInvoiced("2025-05"))
	assert.True(t, tx.IsMonthInvoiced("2025-04"))
	assert.True(t, tx.IsMonthInvoiced("2025-05"))
	assert.False(t, tx.IsMonthInvoiced("2025-06"))
}

func TestTransaction_SecurityDepositOneShot(t *testing.T) {
	tx := newTestTransaction(t)

	require.NoError(t, tx.MarkSecurityDepositInvoiced())
	assert.True(t, tx.SecurityDepositInvoiced)

	err := tx.MarkSecurityDepositInvoiced()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been created")
}

func TestTransaction_SecurityDepositRequiresAmount(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	tx, err := NewTransaction(uuid.New(), uuid.New(), uuid.New(), "A-101", uuid.New(), "Asha Verma", nil,
		decimal.NewFromInt(18000), decimal.Zero, start, start.AddDate(1, 0, 0))
	require.NoError(t, err)

	err = tx.MarkSecurityDepositInvoiced()
	require.Error(t, err)
	assert.False(t, tx.SecurityDepositInvoiced)
}
