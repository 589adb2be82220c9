package geocode

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/news_locator/pkg/logger"
	"github.com/iWorld-y/news_locator/pkg/metrics"
)

// Strategy 候选地址的提取策略
type Strategy string

const (
	StrategyDirect   Strategy = "direct"
	StrategyPOI      Strategy = "poi"
	StrategyAdmin    Strategy = "admin"
	StrategyFallback Strategy = "fallback"
)

// minQueryLen 短于该长度的文本不做查询
const minQueryLen = 3

var (
	nonAddressChars = regexp.MustCompile(`[^\w\s,.\-]`)
	segmentSep      = regexp.MustCompile(`[,.]`)
)

// extractor 从清洗后的文本中提取候选地址，纯函数
type extractor struct {
	strategy Strategy
	extract  func(text string) []string
}

// Resolver 分层地点解析器
// 按策略顺序逐个尝试候选地址，第一个命中的结果即返回
type Resolver struct {
	lookup     Lookup
	locale     *Locale
	filler     *regexp.Regexp
	extractors []extractor
}

// NewResolver 创建地点解析器，locale 为 nil 时使用默认词表
func NewResolver(lookup Lookup, locale *Locale) (*Resolver, error) {
	if lookup == nil {
		return nil, errors.New("geocode lookup is nil")
	}
	if locale == nil {
		locale = DefaultLocale()
	}

	r := &Resolver{lookup: lookup, locale: locale}

	if len(locale.FillerWords) > 0 {
		re, err := regexp.Compile(`(?i)\b(?:` + alternation(locale.FillerWords) + `)\s+`)
		if err != nil {
			return nil, fmt.Errorf("compile filler words: %w", err)
		}
		r.filler = re
	}

	poi, err := poiExtractor(locale.POIKeywords, locale.POIConnectors)
	if err != nil {
		return nil, err
	}
	admin, err := adminExtractor(locale.AdminLevels)
	if err != nil {
		return nil, err
	}

	r.extractors = []extractor{
		{strategy: StrategyDirect, extract: directCandidates},
		{strategy: StrategyPOI, extract: poi},
		{strategy: StrategyAdmin, extract: admin},
		{strategy: StrategyFallback, extract: lastSegment},
	}
	return r, nil
}

// Resolve 解析地点描述，无法解析时返回 nil, false
// 查询错误只记录日志，不会返回给调用方
func (r *Resolver) Resolve(ctx context.Context, text string) (*GeoResult, bool) {
	if r.Rejects(text) {
		return nil, false
	}

	clean := r.Clean(text)
	logger.Log.Infof("地点解析输入: %q", clean)

	for _, ex := range r.extractors {
		for _, candidate := range ex.extract(clean) {
			if ctx.Err() != nil {
				logger.Log.Warnf("地点解析已取消: %v", ctx.Err())
				return nil, false
			}
			res := r.try(ctx, candidate)
			if res == nil {
				continue
			}
			res.Strategy = ex.strategy
			metrics.ObserveResolution(string(ex.strategy))
			logger.Log.Infof("地点解析成功 [%s]: %q -> %s", ex.strategy, candidate, res.DisplayName)
			return res, true
		}
	}

	metrics.ObserveResolution("none")
	logger.Log.Infof("地点解析失败: %q", clean)
	return nil, false
}

// Rejects 判断输入是否无需查询
func (r *Resolver) Rejects(text string) bool {
	if utf8.RuneCountInString(text) < minQueryLen {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range r.locale.RejectionPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// Clean 去掉 "di"、"sekitar" 等虚词
func (r *Resolver) Clean(text string) string {
	if r.filler != nil {
		text = r.filler.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// Candidates 按尝试顺序列出所有候选地址，便于调试
func (r *Resolver) Candidates(text string) []string {
	clean := r.Clean(text)
	var out []string
	for _, ex := range r.extractors {
		out = append(out, ex.extract(clean)...)
	}
	return out
}

func (r *Resolver) try(ctx context.Context, candidate string) *GeoResult {
	if utf8.RuneCountInString(candidate) < minQueryLen {
		return nil
	}

	query := NormalizeQuery(candidate, r.locale.DefaultRegion)
	res, err := r.lookup.Lookup(ctx, query, r.locale.CountryCode)
	if err != nil {
		metrics.ObserveGeocodeLookup("error")
		logger.Log.Warnf("地理编码查询失败 [%s] %q: %v", ErrorTypeOf(err), query, err)
		return nil
	}
	if res == nil {
		metrics.ObserveGeocodeLookup("miss")
		return nil
	}
	metrics.ObserveGeocodeLookup("hit")
	return res
}

// NormalizeQuery 追加地区限定词并去掉地址之外的字符
func NormalizeQuery(query, region string) string {
	if region != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(region)) {
		query = query + ", " + region
	}
	return nonAddressChars.ReplaceAllString(query, "")
}

func directCandidates(text string) []string {
	return []string{text}
}

// poiExtractor 匹配 "<关键词> <后续词>"，直到逗号、连接词或文本结尾
func poiExtractor(keywords, connectors []string) (func(string) []string, error) {
	terminators := []string{","}
	for _, c := range connectors {
		terminators = append(terminators, `\s`+regexp.QuoteMeta(c))
	}
	terminators = append(terminators, "$")
	tail := `(?:` + strings.Join(terminators, "|") + `)`

	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		re, err := regexp.Compile(`(?i)\b(` + regexp.QuoteMeta(kw) + `\s+[\w\s]+?)` + tail)
		if err != nil {
			return nil, fmt.Errorf("compile poi keyword %q: %w", kw, err)
		}
		patterns = append(patterns, re)
	}

	return func(text string) []string {
		var out []string
		for _, re := range patterns {
			if m := re.FindStringSubmatch(text); m != nil {
				out = append(out, strings.TrimSpace(m[1]))
			}
		}
		return out
	}, nil
}

// adminExtractor 匹配 "<行政级别> <名称>"，候选包含级别词本身
func adminExtractor(levels []string) (func(string) []string, error) {
	patterns := make([]*regexp.Regexp, 0, len(levels))
	for _, lvl := range levels {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(lvl) + `\s+[A-Za-z0-9\s\-]+`)
		if err != nil {
			return nil, fmt.Errorf("compile admin level %q: %w", lvl, err)
		}
		patterns = append(patterns, re)
	}

	return func(text string) []string {
		var out []string
		for _, re := range patterns {
			if m := re.FindString(text); m != "" {
				out = append(out, strings.TrimSpace(m))
			}
		}
		return out
	}, nil
}

// lastSegment 文本能按逗号或句号切分时，取最后一个非空片段
func lastSegment(text string) []string {
	parts := segmentSep.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			return []string{p}
		}
	}
	return nil
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
