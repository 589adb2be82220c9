package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// GeoResult 一次成功的地理编码查询结果，只能由查询响应构造
type GeoResult struct {
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	DisplayName string            `json:"display_name"`
	Components  map[string]string `json:"components"`

	// Strategy 命中的候选策略，由 Resolver 填写
	Strategy Strategy `json:"-"`
}

// Lookup 外部地理编码查询适配器
// 返回 nil, nil 表示没有匹配结果
type Lookup interface {
	Lookup(ctx context.Context, query string, countryCode string) (*GeoResult, error)
}

// ErrorType 查询错误分类
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeRateLimit
	ErrorTypeQuotaExceeded
	ErrorTypeInvalidRequest
	ErrorTypeNotFound
	ErrorTypeUnavailable
	ErrorTypeNetwork
	ErrorTypeDecode
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeQuotaExceeded:
		return "quota_exceeded"
	case ErrorTypeInvalidRequest:
		return "invalid_request"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeUnavailable:
		return "unavailable"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LookupError 地理编码适配器返回的错误
type LookupError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ErrorTypeOf 返回错误的分类，非 LookupError 归为 unknown
func ErrorTypeOf(err error) ErrorType {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return lerr.Type
	}
	return ErrorTypeUnknown
}

// ClassifyHTTPStatus 将非 200 的 HTTP 状态码归类为 LookupError
func ClassifyHTTPStatus(statusCode int, body string) *LookupError {
	var t ErrorType
	switch statusCode {
	case http.StatusTooManyRequests:
		t = ErrorTypeRateLimit
	case http.StatusForbidden, http.StatusUnauthorized:
		t = ErrorTypeQuotaExceeded
	case http.StatusBadRequest:
		t = ErrorTypeInvalidRequest
	case http.StatusNotFound:
		t = ErrorTypeNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		t = ErrorTypeUnavailable
	default:
		t = ErrorTypeUnknown
	}

	msg := fmt.Sprintf("geocode api error (status %d)", statusCode)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return &LookupError{Type: t, Message: msg}
}
