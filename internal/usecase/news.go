package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/internal/domain"
	"github.com/iWorld-y/news_locator/internal/repo"
	"github.com/iWorld-y/news_locator/pkg/analyzer"
	"github.com/iWorld-y/news_locator/pkg/geocode"
	"github.com/iWorld-y/news_locator/pkg/model"
	"github.com/iWorld-y/news_locator/pkg/scraper"
	"github.com/iWorld-y/news_locator/pkg/search"
)

const (
	searchResults          = 10
	defaultHighlightQuery  = "Berita Terkini Indonesia"
	defaultHighlightResult = 20
	defaultHighlightTTL    = 15 * time.Minute
	defaultScore           = 50
	maxPageSize            = 50
)

// Analyzer 新闻分析
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*model.Analysis, error)
}

// LocationResolver 地名解析
type LocationResolver interface {
	Resolve(ctx context.Context, text string) (*geocode.GeoResult, bool)
}

// PageScraper 页面抓取
type PageScraper interface {
	Extract(ctx context.Context, pageURL string) scraper.Content
}

// NewsUseCase 新闻分析业务逻辑
type NewsUseCase struct {
	analyzer Analyzer
	searcher search.Searcher
	resolver LocationResolver
	scraper  PageScraper
	archive  repo.AnalysisRepo
	cache    repo.HighlightCache

	highlightQuery   string
	highlightResults int
	highlightTTL     time.Duration
	refreshMu        sync.Mutex

	log *log.Helper
}

// NewNewsUseCase 创建新闻分析业务逻辑实例
func NewNewsUseCase(
	a Analyzer,
	s search.Searcher,
	r LocationResolver,
	sc PageScraper,
	archive repo.AnalysisRepo,
	cache repo.HighlightCache,
	hc *conf.Highlights,
	logger log.Logger,
) *NewsUseCase {
	uc := &NewsUseCase{
		analyzer:         a,
		searcher:         s,
		resolver:         r,
		scraper:          sc,
		archive:          archive,
		cache:            cache,
		highlightQuery:   defaultHighlightQuery,
		highlightResults: defaultHighlightResult,
		highlightTTL:     defaultHighlightTTL,
		log:              log.NewHelper(logger),
	}
	if hc != nil {
		if hc.Query != "" {
			uc.highlightQuery = hc.Query
		}
		if hc.MaxResults > 0 {
			uc.highlightResults = int(hc.MaxResults)
		}
		if hc.Ttl > 0 {
			uc.highlightTTL = time.Duration(hc.Ttl) * time.Second
		}
	}
	return uc
}

// Analyze 分析一个搜索主题：LLM 分析与新闻搜索并行执行，再解析地点
func (uc *NewsUseCase) Analyze(ctx context.Context, query string) (*domain.AnalyzeReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.BadRequest("EMPTY_QUERY", "Query kosong")
	}

	var (
		wg       sync.WaitGroup
		analysis *model.Analysis
		articles []model.Article
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := uc.analyzer.Analyze(ctx, analyzer.SearchPrompt(query))
		if err != nil {
			uc.log.WithContext(ctx).Errorf("analyze query %q: %v", query, err)
			return
		}
		analysis = res
	}()
	go func() {
		defer wg.Done()
		articles = uc.searchArticles(ctx, query, searchResults)
	}()
	wg.Wait()

	if analysis == nil {
		analysis = &model.Analysis{}
	}

	var geo *geocode.GeoResult
	if analysis.Location != "" {
		geo, _ = uc.resolver.Resolve(ctx, analysis.Location)
	}

	reply := &domain.AnalyzeReply{
		Location:    analysis.Location,
		Summary:     analysis.Summary,
		Validity:    analysis.Validity,
		TrustScore:  analysis.TrustScore,
		Coordinates: geo,
		Hierarchy:   geocode.HierarchyOf(geo, analysis.Location),
		Articles:    articles,
		Images:      []string{},
	}
	if reply.Location == "" {
		reply.Location = model.LocationNone
	}
	if reply.Summary == "" {
		reply.Summary = model.SummaryMissing
	}
	if reply.Validity == "" {
		reply.Validity = model.StatusVerify
	}
	if reply.TrustScore == 0 {
		reply.TrustScore = defaultScore
	}
	return reply, nil
}

// AnalyzeURL 深度分析单篇新闻，分析失败时返回兜底结果而不是错误
func (uc *NewsUseCase) AnalyzeURL(ctx context.Context, pageURL string) (*domain.DetailReply, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, errors.BadRequest("EMPTY_URL", "URL kosong")
	}

	uc.log.WithContext(ctx).Infof("analyze url: %s", pageURL)
	content := uc.scraper.Extract(ctx, pageURL)

	analysis, err := uc.analyzer.Analyze(ctx, analyzer.URLPrompt(content.Text, pageURL))
	if err != nil {
		uc.log.WithContext(ctx).Errorf("analyze url %s: %v", pageURL, err)
		return failedDetail(), nil
	}

	geo, _ := uc.resolver.Resolve(ctx, analysis.Location)

	images := content.Images
	if images == nil {
		images = []string{}
	}
	reply := &domain.DetailReply{
		Title:        "Detail Berita",
		Location:     analysis.Location,
		Summary:      analysis.Summary,
		Validity:     analysis.Validity,
		TrustScore:   analysis.TrustScore,
		HoaxAnalysis: analysis.HoaxAnalysis,
		Coordinates:  geo,
		Images:       images,
	}
	if reply.Location == "" {
		reply.Location = model.LocationNone
	}

	if _, err := uc.archive.SaveAnalysis(ctx, &domain.ArchivedAnalysis{
		URL:          pageURL,
		Location:     reply.Location,
		Summary:      reply.Summary,
		Validity:     reply.Validity,
		TrustScore:   reply.TrustScore,
		HoaxAnalysis: reply.HoaxAnalysis,
	}); err != nil {
		uc.log.WithContext(ctx).Warnf("archive analysis %s: %v", pageURL, err)
	}

	return reply, nil
}

func failedDetail() *domain.DetailReply {
	return &domain.DetailReply{
		Title:        model.StatusFailed,
		Location:     model.LocationNone,
		Summary:      "Maaf, terjadi kesalahan teknis saat menganalisis berita.",
		Validity:     model.StatusVerify,
		TrustScore:   0,
		HoaxAnalysis: "Gagal menganalisis.",
		Coordinates:  nil,
		Images:       []string{},
	}
}

// Highlights 返回热点新闻，缓存有效期内不再搜索
// 刷新失败时优先返回过期缓存
func (uc *NewsUseCase) Highlights(ctx context.Context) (*domain.Highlights, error) {
	if cached, fresh := uc.cachedHighlights(ctx); fresh {
		return cached, nil
	}

	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()

	// 等锁期间可能已被其他请求刷新
	cached, fresh := uc.cachedHighlights(ctx)
	if fresh {
		return cached, nil
	}

	uc.log.WithContext(ctx).Info("refreshing highlights")
	resp, err := uc.searcher.Search(ctx, &search.Request{
		Query:      uc.highlightQuery,
		Topic:      "news",
		MaxResults: uc.highlightResults,
	})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("refresh highlights: %v", err)
		if cached != nil {
			return cached, nil
		}
		return nil, errors.InternalServer("HIGHLIGHTS_FAILED", "Gagal load highlight")
	}

	h := &domain.Highlights{Status: "ok", Highlights: toArticles(resp.Results)}
	if len(h.Highlights) > 0 {
		if err := uc.cache.Set(ctx, h, uc.highlightTTL); err != nil {
			uc.log.WithContext(ctx).Warnf("cache highlights: %v", err)
		}
	}
	return h, nil
}

func (uc *NewsUseCase) cachedHighlights(ctx context.Context) (*domain.Highlights, bool) {
	cached, fresh, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("read highlight cache: %v", err)
		return nil, false
	}
	return cached, fresh && cached != nil
}

// ExtractImages 抓取页面配图
func (uc *NewsUseCase) ExtractImages(ctx context.Context, pageURL string) ([]string, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, errors.BadRequest("EMPTY_URL", "URL kosong")
	}
	images := uc.scraper.Extract(ctx, pageURL).Images
	if images == nil {
		images = []string{}
	}
	return images, nil
}

// ListAnalyses 分页列出已归档的分析
func (uc *NewsUseCase) ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.ArchivedAnalysis, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return uc.archive.ListAnalyses(ctx, page, pageSize)
}

func (uc *NewsUseCase) searchArticles(ctx context.Context, query string, n int) []model.Article {
	resp, err := uc.searcher.Search(ctx, &search.Request{Query: query, Topic: "news", MaxResults: n})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("search %q: %v", query, err)
		return []model.Article{}
	}
	return toArticles(resp.Results)
}

func toArticles(results []search.Result) []model.Article {
	articles := make([]model.Article, 0, len(results))
	for _, r := range results {
		source := r.Source
		if source == "" {
			source = search.HostOf(r.URL)
		}
		image := r.Image
		if image == "" {
			image = search.PlaceholderImage
		}
		articles = append(articles, model.Article{
			Title:   r.Title,
			Link:    r.URL,
			Source:  source,
			Image:   image,
			Snippet: r.Content,
		})
	}
	return articles
}
