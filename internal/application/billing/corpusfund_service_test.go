package billing

import (
	"context"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCorpusFundService_Create(t *testing.T) {
	t.Run("creates a draft contribution", func(t *testing.T) {
		repo := new(MockCorpusFundRepository)
		svc := NewCorpusFundService(repo, new(MockInvoiceRepository), zap.NewNop())

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), CreateCorpusFundRequest{
			FlatID:    uuid.New(),
			OwnerID:   uuid.New(),
			OwnerName: "Vikram Shah",
			Amount:    decimal.NewFromInt(100000),
		})

		require.NoError(t, err)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Nil(t, resp.InvoiceID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc := NewCorpusFundService(new(MockCorpusFundRepository), new(MockInvoiceRepository), zap.NewNop())

		_, err := svc.Create(context.Background(), CreateCorpusFundRequest{
			FlatID:  uuid.New(),
			OwnerID: uuid.New(),
			Amount:  decimal.Zero,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})
}

func TestCorpusFundService_CreateInvoice(t *testing.T) {
	t.Run("raises the single invoice and closes the record", func(t *testing.T) {
		repo := new(MockCorpusFundRepository)
		invoiceRepo := new(MockInvoiceRepository)
		svc := NewCorpusFundService(repo, invoiceRepo, zap.NewNop())

		cf, err := billing.NewCorpusFund(uuid.New(), uuid.New(), "Vikram Shah", decimal.NewFromInt(100000))
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, cf.ID).Return(cf, nil)
		invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("SaveWithLock", mock.Anything, cf).Return(nil)

		resp, err := svc.CreateInvoice(context.Background(), cf.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, string(billing.OriginCorpusFund), resp.OriginType)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, billing.CorpusFundStatusInvoiced, cf.Status)
		require.NotNil(t, cf.InvoiceID)
		assert.Equal(t, resp.ID, *cf.InvoiceID)
	})

	t.Run("rejects a second invoice", func(t *testing.T) {
		repo := new(MockCorpusFundRepository)
		svc := NewCorpusFundService(repo, new(MockInvoiceRepository), zap.NewNop())

		cf, err := billing.NewCorpusFund(uuid.New(), uuid.New(), "Vikram Shah", decimal.NewFromInt(100000))
		require.NoError(t, err)
		require.NoError(t, cf.MarkInvoiced(uuid.New()))

		repo.On("FindByID", mock.Anything, cf.ID).Return(cf, nil)

		_, err = svc.CreateInvoice(context.Background(), cf.ID, time.Now())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
