package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/lease"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoicingService raises rent and security deposit invoices for confirmed
// leases. Rent is at most once per calendar month; the deposit exactly once
// per lease.
type InvoicingService struct {
	txRepo      lease.TransactionRepository
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewInvoicingService creates a new InvoicingService
func NewInvoicingService(
	txRepo lease.TransactionRepository,
	invoiceRepo billing.InvoiceRepository,
	logger *zap.Logger,
) *InvoicingService {
	return &InvoicingService{
		txRepo:      txRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// InvoiceResponse is the API shape of a raised invoice
type InvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	PeriodKey   string          `json:"period_key,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
}

func toInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		PeriodKey:   inv.PeriodKey,
		TotalAmount: inv.TotalAmount.Amount(),
		Status:      string(inv.Status),
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
	}
}

// CreateRentInvoice raises the rent invoice for the month containing now.
// The transaction's invoiced-months ledger makes the operation idempotent
// per period: a second call for the same month fails with a conflict.
func (s *InvoicingService) CreateRentInvoice(ctx context.Context, transactionID uuid.UUID, now time.Time) (*InvoiceResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !tx.IsConfirmed() {
		return nil, errNotConfirmed(tx)
	}

	monthKey := lease.MonthKey(now)
	if err := tx.MarkMonthInvoiced(monthKey); err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(tx.TenantID, tx.TenantName, tx.FlatID, billing.OriginRent, tx.ID, now)
	if err != nil {
		return nil, err
	}
	inv.PeriodKey = monthKey
	if err := inv.AddLine(fmt.Sprintf("Monthly rent %s for flat %s", monthKey, tx.FlatName), decimal.NewFromInt(1), tx.RentPrice); err != nil {
		return nil, err
	}
	if err := inv.Post(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	// Persist the ledger with the version check so two concurrent calls for
	// the same month cannot both mark it
	if err := s.txRepo.SaveWithLock(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Rent invoice created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("month", monthKey),
		zap.String("invoice", inv.Number),
	)

	return toInvoiceResponse(inv), nil
}

// CreateSecurityDepositInvoice raises the one-shot deposit invoice
func (s *InvoicingService) CreateSecurityDepositInvoice(ctx context.Context, transactionID uuid.UUID, now time.Time) (*InvoiceResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !tx.IsConfirmed() {
		return nil, errNotConfirmed(tx)
	}

	if err := tx.MarkSecurityDepositInvoiced(); err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(tx.TenantID, tx.TenantName, tx.FlatID, billing.OriginSecurityDeposit, tx.ID, now)
	if err != nil {
		return nil, err
	}
	if err := inv.AddLine(fmt.Sprintf("Security deposit for flat %s", tx.FlatName), decimal.NewFromInt(1), tx.SecurityDeposit); err != nil {
		return nil, err
	}
	if err := inv.Post(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.txRepo.SaveWithLock(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Security deposit invoice created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("invoice", inv.Number),
	)

	return toInvoiceResponse(inv), nil
}

func errNotConfirmed(tx *lease.Transaction) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Lease must be confirmed to invoice, currently %s", tx.Status))
}
