package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/internal/service"
	"github.com/iWorld-y/news_locator/pkg/metrics"
)

func NewHTTPServer(c *conf.Server, s *service.NewsService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	service.RegisterNewsHTTPServer(srv, s)

	metrics.Init()
	srv.Handle("/metrics", metrics.Handler())
	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// 前端静态文件放在最后注册，避免覆盖 API 路由
	if c != nil && c.Http != nil && c.Http.StaticDir != "" {
		srv.HandlePrefix("/", nethttp.FileServer(nethttp.Dir(c.Http.StaticDir)))
	}

	return srv
}
