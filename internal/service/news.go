package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_locator/internal/domain"
	"github.com/iWorld-y/news_locator/internal/usecase"
)

type AnalyzeRequest struct {
	Query string `json:"query"`
}

type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

type HighlightsRequest struct{}

type ExtractImagesRequest struct {
	URL string `json:"url"`
}

type ExtractImagesReply struct {
	Images []string `json:"images"`
}

type ListAnalysesRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type ListAnalysesReply struct {
	Analyses []*domain.ArchivedAnalysis `json:"analyses"`
	Total    int32                      `json:"total"`
}

type NewsService struct {
	uc  *usecase.NewsUseCase
	log *log.Helper
}

func NewNewsService(uc *usecase.NewsUseCase, logger log.Logger) *NewsService {
	return &NewsService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *NewsService) Analyze(ctx context.Context, req *AnalyzeRequest) (*domain.AnalyzeReply, error) {
	return s.uc.Analyze(ctx, req.Query)
}

func (s *NewsService) AnalyzeURL(ctx context.Context, req *AnalyzeURLRequest) (*domain.DetailReply, error) {
	return s.uc.AnalyzeURL(ctx, req.URL)
}

func (s *NewsService) Highlights(ctx context.Context, _ *HighlightsRequest) (*domain.Highlights, error) {
	return s.uc.Highlights(ctx)
}

func (s *NewsService) ExtractImages(ctx context.Context, req *ExtractImagesRequest) (*ExtractImagesReply, error) {
	images, err := s.uc.ExtractImages(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return &ExtractImagesReply{Images: images}, nil
}

func (s *NewsService) ListAnalyses(ctx context.Context, req *ListAnalysesRequest) (*ListAnalysesReply, error) {
	list, total, err := s.uc.ListAnalyses(ctx, int(req.Page), int(req.PageSize))
	if err != nil {
		s.log.WithContext(ctx).Errorf("list analyses: %v", err)
		return nil, err
	}
	return &ListAnalysesReply{Analyses: list, Total: int32(total)}, nil
}
