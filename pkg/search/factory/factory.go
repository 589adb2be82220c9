package factory

import (
	"fmt"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/pkg/search"
	"github.com/iWorld-y/news_locator/pkg/search/google"
	"github.com/iWorld-y/news_locator/pkg/search/searxng"
	"github.com/iWorld-y/news_locator/pkg/search/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *conf.Search) (search.Searcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("search provider not configured")
	}

	provider := cfg.Provider
	if provider == "" {
		// 未指定时按 google -> tavily -> searxng 的顺序取第一个配置齐全的
		switch {
		case cfg.Google != nil && cfg.Google.ApiKey != "" && cfg.Google.Cx != "":
			provider = "google"
		case cfg.Tavily != nil && cfg.Tavily.ApiKey != "":
			provider = "tavily"
		case cfg.Searxng != nil && cfg.Searxng.BaseUrl != "":
			provider = "searxng"
		default:
			return nil, fmt.Errorf("search provider not configured")
		}
	}

	switch provider {
	case "google":
		if cfg.Google == nil || cfg.Google.ApiKey == "" || cfg.Google.Cx == "" {
			return nil, fmt.Errorf("google api key or cx is missing")
		}
		return google.NewClient(cfg.Google.ApiKey, cfg.Google.Cx), nil

	case "tavily":
		if cfg.Tavily == nil || cfg.Tavily.ApiKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.ApiKey), nil

	case "searxng":
		if cfg.Searxng == nil || cfg.Searxng.BaseUrl == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Searxng.BaseUrl, int(cfg.Searxng.Timeout)), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
