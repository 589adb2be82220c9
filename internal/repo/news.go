package repo

import (
	"context"
	"time"

	"github.com/iWorld-y/news_locator/internal/domain"
)

// AnalysisRepo 分析归档仓库接口
type AnalysisRepo interface {
	// SaveAnalysis 归档一条分析，返回生成的 ID
	SaveAnalysis(ctx context.Context, a *domain.ArchivedAnalysis) (string, error)
	// ListAnalyses 按创建时间倒序分页，返回总数
	ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.ArchivedAnalysis, int, error)
}

// HighlightCache 热点新闻缓存接口
type HighlightCache interface {
	// Get 返回缓存内容以及是否仍在有效期内，无缓存时返回 nil
	Get(ctx context.Context) (*domain.Highlights, bool, error)
	Set(ctx context.Context, h *domain.Highlights, ttl time.Duration) error
}
