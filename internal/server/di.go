package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/news_locator/internal/data"
	"github.com/iWorld-y/news_locator/internal/service"
	"github.com/iWorld-y/news_locator/internal/usecase"
)

// ProviderSet 是新闻服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewPipeline,
	wire.FieldsOf(new(*Pipeline), "Searcher", "Analyzer", "Resolver", "Scraper", "Highlights"),

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,
	data.NewHighlightCache,

	// UseCase providers
	usecase.NewNewsUseCase,

	// Service providers
	service.NewNewsService,
)
