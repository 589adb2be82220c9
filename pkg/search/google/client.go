package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/news_locator/pkg/logger"
	"github.com/iWorld-y/news_locator/pkg/metrics"
	"github.com/iWorld-y/news_locator/pkg/search"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	// pageSize Custom Search 每页最多返回 10 条
	pageSize = 10
	// maxResults Custom Search 最多只能翻到第 50 条左右
	maxResults = 50
)

// Client Google Custom Search JSON API 客户端
type Client struct {
	apiKey  string
	cx      string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Google Custom Search 客户端
func NewClient(apiKey, cx string) *Client {
	return &Client{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL 替换接口地址
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchResponse Custom Search 响应
type SearchResponse struct {
	Items []Item `json:"items"`
}

// Item 单条结果
type Item struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	DisplayLink string  `json:"displayLink"`
	Snippet     string  `json:"snippet"`
	Pagemap     Pagemap `json:"pagemap"`
}

// Pagemap 结构化页面数据，只取缩略图相关字段
type Pagemap struct {
	CseImage []struct {
		Src string `json:"src"`
	} `json:"cse_image"`
	Metatags []map[string]string `json:"metatags"`
}

// Search 分页拉取搜索结果
// 某一页请求失败或为空时停止翻页，返回已经拿到的结果
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	limit := req.MaxResults
	if limit <= 0 {
		limit = pageSize
	}
	if limit > maxResults {
		limit = maxResults
	}

	var results []search.Result
	for start := 1; start <= limit; start += pageSize {
		logger.Log.Infof("Google 搜索: %q (start=%d)", req.Query, start)

		items, err := c.fetchPage(ctx, req.Query, start)
		if err != nil {
			metrics.ObserveSearch("google", "error")
			if len(results) == 0 && start == 1 {
				return nil, err
			}
			logger.Log.Errorf("Google 搜索翻页失败 [%s]: %v", req.Query, err)
			break
		}
		metrics.ObserveSearch("google", "ok")
		if len(items) == 0 {
			break
		}

		for _, it := range items {
			results = append(results, search.Result{
				Title:   it.Title,
				URL:     it.Link,
				Content: it.Snippet,
				Source:  it.DisplayLink,
				Image:   thumbnail(it.Pagemap),
			})
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return &search.Response{Results: results}, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, start int) ([]Item, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("cx", c.cx)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(pageSize))
	q.Set("start", strconv.Itoa(start))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("google api error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}
	return searchResp.Items, nil
}

func thumbnail(p Pagemap) string {
	if len(p.CseImage) > 0 && p.CseImage[0].Src != "" {
		return p.CseImage[0].Src
	}
	if len(p.Metatags) > 0 {
		if og := p.Metatags[0]["og:image"]; og != "" {
			return og
		}
	}
	return search.PlaceholderImage
}
