package search

import (
	"context"
	"net/url"
	"strings"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string // 摘要片段
	Source        string // 来源站点
	Image         string // 缩略图
	Score         float64
	PublishedDate string
}

// PlaceholderImage 搜索结果没有缩略图时使用的占位图
const PlaceholderImage = "https://placehold.co/100x80?text=News"

// HostOf 返回链接的站点名，解析失败时返回空串
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
