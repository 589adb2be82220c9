package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/news_locator/internal/domain"
	"github.com/iWorld-y/news_locator/internal/repo"
)

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) repo.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) SaveAnalysis(ctx context.Context, a *domain.ArchivedAnalysis) (string, error) {
	if r.data.db == nil {
		return "", nil
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO analyses (id, url, location, summary, validity, trust_score, hoax_analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, a.URL, a.Location, a.Summary, a.Validity, a.TrustScore, a.HoaxAnalysis, createdAt,
	)
	if err != nil {
		return "", err
	}

	a.ID = id
	a.CreatedAt = createdAt
	return id, nil
}

func (r *analysisRepo) ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.ArchivedAnalysis, int, error) {
	if r.data.db == nil {
		return []*domain.ArchivedAnalysis{}, 0, nil
	}

	offset := (page - 1) * pageSize
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, url, location, summary, validity, trust_score, hoax_analysis, created_at
		FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.ArchivedAnalysis, 0, pageSize)
	for rows.Next() {
		a := &domain.ArchivedAnalysis{}
		if err := rows.Scan(&a.ID, &a.URL, &a.Location, &a.Summary, &a.Validity, &a.TrustScore, &a.HoaxAnalysis, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
