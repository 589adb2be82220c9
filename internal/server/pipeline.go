package server

import (
	"context"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/internal/usecase"
	"github.com/iWorld-y/news_locator/pkg/analyzer"
	"github.com/iWorld-y/news_locator/pkg/geocode"
	"github.com/iWorld-y/news_locator/pkg/geocode/locationiq"
	pipelineLogger "github.com/iWorld-y/news_locator/pkg/logger"
	"github.com/iWorld-y/news_locator/pkg/model"
	"github.com/iWorld-y/news_locator/pkg/scraper"
	"github.com/iWorld-y/news_locator/pkg/search"
	"github.com/iWorld-y/news_locator/pkg/search/factory"
)

var errLLMDisabled = errors.New("llm not configured")

// Pipeline 新闻处理流水线的各个组件
type Pipeline struct {
	Searcher   search.Searcher
	Analyzer   usecase.Analyzer
	Resolver   usecase.LocationResolver
	Scraper    usecase.PageScraper
	Highlights *conf.Highlights
}

// NewPipeline 根据配置组装搜索、LLM、地理编码和抓取组件
func NewPipeline(c *conf.Pipeline, logger log.Logger) (*Pipeline, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil {
		return nil, nil, errors.New("pipeline config is missing")
	}

	if c.Log != nil {
		if err := pipelineLogger.InitLogger(c.Log.Level, c.Log.File); err != nil {
			helper.Errorf("Failed to init pipeline logger: %v", err)
			_ = pipelineLogger.InitLogger("info", "") // 降级处理
		}
	}

	searcher, err := factory.NewSearcher(c.Search)
	if err != nil {
		helper.Errorf("Failed to init searcher: %v", err)
		return nil, nil, err
	}

	var a usecase.Analyzer
	if c.Llm == nil || c.Llm.ApiKey == "" {
		helper.Warn("llm api key missing, analysis disabled")
		a = disabledAnalyzer{}
	} else {
		a, err = analyzer.NewFromConfig(context.Background(), c.Llm, c.Concurrency)
		if err != nil {
			helper.Errorf("Failed to init analyzer: %v", err)
			return nil, nil, err
		}
	}

	resolver, err := NewResolver(c.Geocode, logger)
	if err != nil {
		return nil, nil, err
	}

	p := &Pipeline{
		Searcher:   searcher,
		Analyzer:   a,
		Resolver:   resolver,
		Scraper:    newScraper(c.Scraper),
		Highlights: c.Highlights,
	}
	cleanup := func() {
		helper.Info("Cleaning up news pipeline")
	}
	return p, cleanup, nil
}

// NewResolver 基于 LocationIQ 创建地名解析器
func NewResolver(c *conf.Geocode, logger log.Logger) (*geocode.Resolver, error) {
	helper := log.NewHelper(logger)
	if c == nil {
		c = &conf.Geocode{}
	}
	if c.ApiKey == "" {
		helper.Warn("geocode api key missing, every lookup will fail")
	}

	var opts []locationiq.Option
	if c.BaseUrl != "" {
		opts = append(opts, locationiq.WithBaseURL(c.BaseUrl))
	}
	if c.Timeout > 0 {
		opts = append(opts, locationiq.WithTimeout(time.Duration(c.Timeout)*time.Second))
	}

	locale := geocode.DefaultLocale()
	if c.Locale != "" {
		loaded, err := geocode.LoadLocale(c.Locale)
		if err != nil {
			helper.Errorf("Failed to load locale %s: %v", c.Locale, err)
			return nil, err
		}
		locale = loaded
	}

	return geocode.NewResolver(locationiq.NewClient(c.ApiKey, opts...), locale)
}

func newScraper(c *conf.Scraper) *scraper.Scraper {
	if c == nil {
		return scraper.New("", 0)
	}
	return scraper.New(c.UserAgent, time.Duration(c.Timeout)*time.Second)
}

// disabledAnalyzer 未配置 LLM 时使用，调用方按分析失败处理
type disabledAnalyzer struct{}

func (disabledAnalyzer) Analyze(context.Context, string) (*model.Analysis, error) {
	return nil, errLLMDisabled
}
