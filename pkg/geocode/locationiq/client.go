package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/news_locator/pkg/geocode"
)

// API Docs: https://docs.locationiq.com/reference/search
// Sample request: https://us1.locationiq.com/v1/search?key=KEY&q=Monas&format=json&limit=1
const (
	defaultBaseURL = "https://us1.locationiq.com/v1/search"
	defaultTimeout = 10 * time.Second
)

// Client LocationIQ 正向地理编码客户端
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 替换接口地址，测试时指向 httptest 服务
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout 设置单次查询超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient 创建 LocationIQ 客户端
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements geocode.Lookup
var _ geocode.Lookup = (*Client)(nil)

// Place LocationIQ 单条搜索结果
type Place struct {
	PlaceID     string            `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	Address     map[string]string `json:"address"`
}

// Lookup 查询最匹配的一个地点，无匹配时返回 nil, nil
func (c *Client) Lookup(ctx context.Context, query string, countryCode string) (*geocode.GeoResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("normalizeaddress", "1")
	if countryCode != "" {
		q.Set("countrycodes", countryCode)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &geocode.LookupError{Type: geocode.ErrorTypeNetwork, Message: "request failed", Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	// LocationIQ 对无结果的查询返回 404 {"error":"Unable to geocode"}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, geocode.ClassifyHTTPStatus(resp.StatusCode, string(body))
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &geocode.LookupError{Type: geocode.ErrorTypeDecode, Message: "failed to decode response", Err: err}
	}
	if len(places) == 0 {
		return nil, nil
	}

	return toResult(places[0])
}

func toResult(p Place) (*geocode.GeoResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, &geocode.LookupError{Type: geocode.ErrorTypeDecode, Message: "invalid lat " + strconv.Quote(p.Lat), Err: err}
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, &geocode.LookupError{Type: geocode.ErrorTypeDecode, Message: "invalid lon " + strconv.Quote(p.Lon), Err: err}
	}

	components := p.Address
	if components == nil {
		components = map[string]string{}
	}

	return &geocode.GeoResult{
		Lat:         lat,
		Lon:         lon,
		DisplayName: p.DisplayName,
		Components:  components,
	}, nil
}
