package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCabPreapprovalRepository creates a GormCabPreapprovalRepository with a mocked SQL connection
func newMockCabPreapprovalRepository(t *testing.T) (*GormCabPreapprovalRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCabPreapprovalRepository(gormDB), mock, mockDB
}

func TestGormCabPreapprovalRepository_FindByID(t *testing.T) {
	t.Run("finds existing pre-approval", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		cabID := uuid.New()
		residentID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "resident_id", "resident_name", "cab_company", "vehicle_number",
			"mode", "access_code", "state", "version",
		}).AddRow(
			cabID, residentID, "Asha Rao", "Blue Cabs", "KA01AB1234",
			"ONCE", "482913", "ACTIVE", 2,
		)

		mock.ExpectQuery(`SELECT \* FROM "cab_preapprovals" WHERE id = \$1`).
			WithArgs(cabID, 1).
			WillReturnRows(rows)

		cab, err := repo.FindByID(context.Background(), cabID)

		assert.NoError(t, err)
		assert.NotNil(t, cab)
		assert.Equal(t, cabID, cab.ID)
		assert.Equal(t, residentID, cab.ResidentID)
		assert.Equal(t, accessgrant.StateActive, cab.State)
		assert.Equal(t, "482913", cab.AccessCode)
		assert.Equal(t, 2, cab.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing pre-approval", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		cabID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cab_preapprovals" WHERE id = \$1`).
			WithArgs(cabID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		cab, err := repo.FindByID(context.Background(), cabID)

		assert.Error(t, err)
		assert.Nil(t, cab)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCabPreapprovalRepository_FindActiveByCode(t *testing.T) {
	t.Run("matches only active state", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		cabID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "access_code", "state", "version"}).
			AddRow(cabID, "123456", "ACTIVE", 1)

		mock.ExpectQuery(`SELECT \* FROM "cab_preapprovals" WHERE access_code = \$1 AND state = \$2`).
			WithArgs("123456", "ACTIVE", 1).
			WillReturnRows(rows)

		cab, err := repo.FindActiveByCode(context.Background(), "123456")

		assert.NoError(t, err)
		assert.Equal(t, cabID, cab.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired code reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "cab_preapprovals" WHERE access_code = \$1 AND state = \$2`).
			WithArgs("123456", "ACTIVE", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		cab, err := repo.FindActiveByCode(context.Background(), "123456")

		assert.Nil(t, cab)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCabPreapprovalRepository_CodeInUse(t *testing.T) {
	t.Run("counts live records only", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cab_preapprovals" WHERE access_code = \$1 AND state <> \$2`).
			WithArgs("654321", "CANCELLED").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		inUse, err := repo.CodeInUse(context.Background(), "654321")

		assert.NoError(t, err)
		assert.True(t, inUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("free code returns false", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cab_preapprovals" WHERE access_code = \$1 AND state <> \$2`).
			WithArgs("654321", "CANCELLED").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		inUse, err := repo.CodeInUse(context.Background(), "654321")

		assert.NoError(t, err)
		assert.False(t, inUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCabPreapprovalRepository_FindDueForExpiry(t *testing.T) {
	t.Run("selects active records past their window", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		now := time.Now()
		cabID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "state", "window_end", "version"}).
			AddRow(cabID, "ACTIVE", now.Add(-2*time.Hour), 1)

		mock.ExpectQuery(`SELECT \* FROM "cab_preapprovals" WHERE state = \$1 AND window_end > \$2 AND window_end < \$3 ORDER BY window_end ASC LIMIT \$4`).
			WithArgs("ACTIVE", time.Time{}, now, 200).
			WillReturnRows(rows)

		due, err := repo.FindDueForExpiry(context.Background(), now, 200)

		assert.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, cabID, due[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCabPreapprovalRepository_SaveWithLock(t *testing.T) {
	t.Run("rejects stale version", func(t *testing.T) {
		repo, mock, mockDB := newMockCabPreapprovalRepository(t)
		defer mockDB.Close()

		cab, err := accessgrant.NewCabPreapproval(uuid.New(), "Asha Rao", uuid.New(), "Blue Cabs", "KA01AB1234", accessgrant.ModeOnce)
		require.NoError(t, err)
		cab.Version = 3

		mock.ExpectExec(`UPDATE "cab_preapprovals" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), cab)

		assert.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
