package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/iWorld-y/news_locator/pkg/logger"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeout   = 5 * time.Second

	// MaxImages 每篇文章最多保留的图片数
	MaxImages = 5
	// MaxTextLen 正文截断长度（字符）
	MaxTextLen = 3000
	// 过短的 src 通常是占位或追踪像素
	minImageSrcLen = 20
	maxBodyBytes   = 5 << 20
)

// Content 抓取到的页面内容
type Content struct {
	Text   string
	Images []string
}

// Scraper 新闻页面抓取器
type Scraper struct {
	userAgent string
	client    *http.Client
}

// New 创建抓取器，timeout 为 0 时使用 5 秒
func New(userAgent string, timeout time.Duration) *Scraper {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Extract 抓取页面正文和图片，任何失败都只记录日志并返回空内容
func (s *Scraper) Extract(ctx context.Context, pageURL string) Content {
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		logger.Log.Warnf("抓取页面失败 [%s]: %v", pageURL, err)
		return Content{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Log.Warnf("解析页面失败 [%s]: %v", pageURL, err)
		return Content{}
	}

	images := ExtractImages(doc)
	text := articleText(body, pageURL)
	if text == "" {
		text = fallbackText(doc)
	}

	return Content{
		Text:   Truncate(text, MaxTextLen),
		Images: images,
	}
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}

// ExtractImages 收集文章配图，跳过图标和 logo，最多 MaxImages 张
func ExtractImages(doc *goquery.Document) []string {
	images := make([]string, 0, MaxImages)
	seen := make(map[string]struct{})

	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok {
			return true
		}
		src = strings.TrimSpace(src)
		lower := strings.ToLower(src)
		if strings.Contains(lower, "icon") || strings.Contains(lower, "logo") || len(src) <= minImageSrcLen {
			return true
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if _, dup := seen[src]; dup {
			return true
		}
		seen[src] = struct{}{}
		images = append(images, src)
		return len(images) < MaxImages
	})

	return images
}

func articleText(body []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		logger.Log.Debugf("readability 提取失败 [%s]: %v", pageURL, err)
		return ""
	}
	return collapseSpace(article.TextContent)
}

func fallbackText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, iframe, .ads, .advertisement").Remove()

	for _, selector := range []string{"article", ".content", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := collapseSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 按字符截断
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
