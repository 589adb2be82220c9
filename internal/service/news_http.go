package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/news_locator/internal/domain"
)

const (
	OperationNewsAnalyze       = "/news.v1.News/Analyze"
	OperationNewsAnalyzeURL    = "/news.v1.News/AnalyzeURL"
	OperationNewsHighlights    = "/news.v1.News/Highlights"
	OperationNewsExtractImages = "/news.v1.News/ExtractImages"
	OperationNewsListAnalyses  = "/news.v1.News/ListAnalyses"
)

type NewsHTTPServer interface {
	Analyze(context.Context, *AnalyzeRequest) (*domain.AnalyzeReply, error)
	AnalyzeURL(context.Context, *AnalyzeURLRequest) (*domain.DetailReply, error)
	Highlights(context.Context, *HighlightsRequest) (*domain.Highlights, error)
	ExtractImages(context.Context, *ExtractImagesRequest) (*ExtractImagesReply, error)
	ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesReply, error)
}

func RegisterNewsHTTPServer(s *http.Server, srv NewsHTTPServer) {
	r := s.Route("/")
	r.POST("/api/analyze", _News_Analyze0_HTTP_Handler(srv))
	r.POST("/api/analyze-url", _News_AnalyzeURL0_HTTP_Handler(srv))
	r.GET("/api/highlights", _News_Highlights0_HTTP_Handler(srv))
	r.POST("/api/extract-images", _News_ExtractImages0_HTTP_Handler(srv))
	r.GET("/api/analyses", _News_ListAnalyses0_HTTP_Handler(srv))
}

func _News_Analyze0_HTTP_Handler(srv NewsHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AnalyzeRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationNewsAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Analyze(ctx, req.(*AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*domain.AnalyzeReply)
		return ctx.Result(200, reply)
	}
}

func _News_AnalyzeURL0_HTTP_Handler(srv NewsHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AnalyzeURLRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationNewsAnalyzeURL)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AnalyzeURL(ctx, req.(*AnalyzeURLRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*domain.DetailReply)
		return ctx.Result(200, reply)
	}
}

func _News_Highlights0_HTTP_Handler(srv NewsHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in HighlightsRequest
		http.SetOperation(ctx, OperationNewsHighlights)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Highlights(ctx, req.(*HighlightsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*domain.Highlights)
		return ctx.Result(200, reply)
	}
}

func _News_ExtractImages0_HTTP_Handler(srv NewsHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ExtractImagesRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationNewsExtractImages)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ExtractImages(ctx, req.(*ExtractImagesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ExtractImagesReply)
		return ctx.Result(200, reply)
	}
}

func _News_ListAnalyses0_HTTP_Handler(srv NewsHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListAnalysesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationNewsListAnalyses)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListAnalyses(ctx, req.(*ListAnalysesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListAnalysesReply)
		return ctx.Result(200, reply)
	}
}
