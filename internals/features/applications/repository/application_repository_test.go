package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/helpers/apperr"
)

func newMockRepo(t *testing.T) (ApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewApplicationRepository(db), mock
}

func pendingRecord() *model.ApplicationModel {
	return &model.ApplicationModel{
		ApplicationCode:                  "APP20240101ABCDEF12",
		ApplicationFirstName:             "Ada",
		ApplicationLastName:              "Lovelace",
		ApplicationEmail:                 "ada@example.com",
		ApplicationPhone:                 "0123456789",
		ApplicationAddress:               "12 Analytical Engine Road",
		ApplicationDateOfBirth:           "2001-12-10",
		ApplicationCourse:                "data_science",
		ApplicationPreviousQualification: "BSc Mathematics",
		ApplicationCGPA:                  "9.0",
		ApplicationCertificateHandle:     "uploads/aaaa_degree.pdf",
		ApplicationIDProofHandle:         "uploads/bbbb_id.png",
		ApplicationStatus:                model.ApplicationPending,
		ApplicationSubmittedAt:           time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestInsertAssignsID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(7))

	rec := pendingRecord()
	require.NoError(t, repo.Insert(context.Background(), rec))
	assert.Equal(t, uint(7), rec.ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDuplicateCode(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Insert(context.Background(), pendingRecord())
	assert.ErrorIs(t, err, apperr.ErrDuplicateIdentity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIdentityNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE application_code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}))

	got, err := repo.GetByIdentity(context.Background(), "APP00000000DEADBEEF")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE application_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "application_code", "application_status"}).
			AddRow(3, "APP20240101ABCDEF12", "approved"))

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ApplicationID)
	assert.Equal(t, "APP20240101ABCDEF12", got.ApplicationCode)
	assert.Equal(t, model.ApplicationApproved, got.ApplicationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateIsGuardedByExpectedStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	casSQL := `UPDATE "applications" SET .* WHERE application_id = \$\d+ AND application_status = \$\d+`

	mock.ExpectExec(casSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(casSQL).WillReturnResult(sqlmock.NewResult(0, 0))

	rec := pendingRecord()
	rec.ApplicationID = 3
	rec.ApplicationStatus = model.ApplicationRejected
	now := time.Now().UTC()
	rec.ApplicationReviewedAt = &now

	require.NoError(t, repo.Update(context.Background(), rec, model.ApplicationPending))

	err := repo.Update(context.Background(), rec, model.ApplicationPending)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications" WHERE application_status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE application_status = \$1 ORDER BY application_submitted_at DESC,\s*application_id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "application_code"}).
			AddRow(12, "APP20240102AAAAAAAA").
			AddRow(11, "APP20240101BBBBBBBB"))

	rows, total, err := repo.List(context.Background(), ListQuery{Status: model.ApplicationPending, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "APP20240102AAAAAAAA", rows[0].ApplicationCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllUnpaged(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "applications" ORDER BY application_submitted_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(2).AddRow(1))

	rows, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatusFillsMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT application_status AS status, COUNT\(\*\) AS n FROM "applications" GROUP BY "?application_status"?`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).AddRow("pending", 4).AddRow("approved", 2))

	got, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got[model.ApplicationPending])
	assert.Equal(t, int64(2), got[model.ApplicationApproved])
	assert.Equal(t, int64(0), got[model.ApplicationRejected])
	assert.NoError(t, mock.ExpectationsWereMet())
}
