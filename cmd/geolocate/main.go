// geolocate 对一段地点描述执行分级地理编码并输出 JSON，便于调试词表和查询效果。
//
//	go run ./cmd/geolocate -conf configs/config.yaml "Jalan Sudirman dekat Bundaran HI, Jakarta Pusat"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	klog "github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/internal/server"
	"github.com/iWorld-y/news_locator/pkg/geocode"
	"github.com/iWorld-y/news_locator/pkg/logger"
)

// Output 命令行输出
type Output struct {
	Input      string             `json:"input"`
	Candidates []string           `json:"candidates"`
	Found      bool               `json:"found"`
	Strategy   geocode.Strategy   `json:"strategy,omitempty"`
	Koordinat  *geocode.GeoResult `json:"koordinat"`
	Hirarki    geocode.Hierarchy  `json:"lokasi_hirarki"`
}

func main() {
	var (
		flagconf string
		locale   string
		timeout  time.Duration
	)
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&locale, "locale", "", "override locale profile path")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: geolocate [-conf path] [-locale path] <location text>")
		os.Exit(2)
	}

	// 1. 加载配置
	c := config.New(config.WithSource(env.NewSource(), file.NewSource(flagconf)))
	defer c.Close()
	if err := c.Load(); err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		log.Fatalf("无法解析配置文件: %v", err)
	}

	geo := &conf.Geocode{}
	if bc.Pipeline != nil && bc.Pipeline.Geocode != nil {
		geo = bc.Pipeline.Geocode
	}
	if locale != "" {
		geo.Locale = locale
	}

	// 2. 初始化日志，命令行只输出警告以上
	if err := logger.InitLogger("warn", ""); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	resolver, err := server.NewResolver(geo, klog.NewStdLogger(os.Stderr))
	if err != nil {
		log.Fatalf("地名解析器初始化失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := Output{Input: text, Candidates: resolver.Candidates(text)}
	res, ok := resolver.Resolve(ctx, text)
	out.Found = ok
	out.Koordinat = res
	out.Hirarki = geocode.HierarchyOf(res, text)
	if res != nil {
		out.Strategy = res.Strategy
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("输出失败: %v", err)
	}
	if !ok {
		os.Exit(1)
	}
}
