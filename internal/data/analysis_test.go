package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/internal/domain"
)

func newMockRepo(t *testing.T) (*analysisRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := NewAnalysisRepo(&Data{db: db}, log.DefaultLogger).(*analysisRepo)
	return r, mock
}

func TestAnalysisRepo_SaveAnalysis(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO analyses`).
		WithArgs(sqlmock.AnyArg(), "https://news.example/a", "Kota Bandung", "Ringkasan", "Terpercaya", 90, "Valid", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := &domain.ArchivedAnalysis{
		URL:          "https://news.example/a",
		Location:     "Kota Bandung",
		Summary:      "Ringkasan",
		Validity:     "Terpercaya",
		TrustScore:   90,
		HoaxAnalysis: "Valid",
	}
	id, err := r.SaveAnalysis(context.Background(), a)
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepo_SaveAnalysisError(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO analyses`).WillReturnError(errors.New("connection reset"))

	_, err := r.SaveAnalysis(context.Background(), &domain.ArchivedAnalysis{URL: "u"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepo_ListAnalyses(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, url, location, summary, validity, trust_score, hoax_analysis, created_at\s+FROM analyses ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "location", "summary", "validity", "trust_score", "hoax_analysis", "created_at"}).
			AddRow("6f1c1c1e-0000-4000-8000-000000000001", "https://a", "Jakarta", "s1", "Terpercaya", 80, "h1", now).
			AddRow("6f1c1c1e-0000-4000-8000-000000000002", "https://b", "Bogor", "s2", "Indikasi Hoaks", 10, "h2", now.Add(-time.Hour)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM analyses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	list, total, err := r.ListAnalyses(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Jakarta", list[0].Location)
	assert.Equal(t, now, list[0].CreatedAt)
	assert.Equal(t, 10, list[1].TrustScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepo_Disabled(t *testing.T) {
	r := NewAnalysisRepo(&Data{}, log.DefaultLogger)

	id, err := r.SaveAnalysis(context.Background(), &domain.ArchivedAnalysis{URL: "u"})
	assert.NoError(t, err)
	assert.Empty(t, id)

	list, total, err := r.ListAnalyses(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS analyses`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, migrate(db))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS analyses`).WillReturnError(errors.New("permission denied"))
	assert.Error(t, migrate(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
