package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/news_locator/internal/conf"
	"github.com/iWorld-y/news_locator/pkg/logger"
	"github.com/iWorld-y/news_locator/pkg/metrics"
	dm "github.com/iWorld-y/news_locator/pkg/model"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = float32(0.2)

	maxRetries = 3
	// minURLTextLen 正文超过该长度才交给模型，否则只凭链接分析
	minURLTextLen = 100
)

// ErrEmptyResponse 模型返回空内容
var ErrEmptyResponse = errors.New("empty llm response")

const systemPrompt = `Kamu adalah Jurnalis Senior Investigasi dan Analis Geospasial.
Tugas utama:
1. Identifikasi lokasi kejadian secara presisi (Jalan, Gedung, Kelurahan, Kecamatan, Kota, Provinsi).
2. Tulis ulang berita secara lengkap dan terstruktur.
3. Analisis validitas berita (cek fakta, sumber, dan logika tulisan).

Jawab HANYA dengan satu objek JSON tanpa markdown, dengan format:
{
	"lokasi_kejadian": "lokasi spesifik kejadian",
	"ringkasan_interaktif": "narasi berita",
	"status_validitas": "Terpercaya | Perlu Verifikasi | Indikasi Hoaks",
	"skor_kepercayaan": 0-100,
	"analisis_hoaks": "alasan singkat mengapa berita valid atau terindikasi hoaks"
}`

// Analyzer 调用 LLM 抽取新闻地点、摘要和可信度
type Analyzer struct {
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
	baseDelay time.Duration
}

// New 使用给定的模型和限流器创建 Analyzer，limiter 为 nil 时不限流
func New(cm model.BaseChatModel, limiter *rate.Limiter) *Analyzer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Analyzer{
		chatModel: cm,
		limiter:   limiter,
		baseDelay: 2 * time.Second,
	}
}

// NewFromConfig 基于 OpenAI 兼容接口创建 Analyzer
func NewFromConfig(ctx context.Context, llm *conf.LLM, cc *conf.Concurrency) (*Analyzer, error) {
	if llm == nil || llm.ApiKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	baseURL := llm.BaseUrl
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelName := llm.Model
	if modelName == "" {
		modelName = defaultModel
	}
	temperature := llm.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     baseURL,
		APIKey:      llm.ApiKey,
		Model:       modelName,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	return New(chatModel, NewLimiter(cc)), nil
}

// NewLimiter 按 RPM 限速，QPS 作为突发量
func NewLimiter(cc *conf.Concurrency) *rate.Limiter {
	if cc == nil || cc.Rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(cc.Qps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(cc.Rpm)/60.0), burst)
}

// SearchPrompt 搜索主题的简短分析
func SearchPrompt(query string) string {
	return query + "\n\nIdentifikasi lokasi dan ringkas singkat (1 paragraf)."
}

// URLPrompt 单篇文章的深度分析，正文过短时只凭链接推断
func URLPrompt(text, pageURL string) string {
	var input string
	if len([]rune(text)) > minURLTextLen {
		input = fmt.Sprintf("ISI BERITA: %s\nURL: %s", text, pageURL)
	} else {
		input = fmt.Sprintf("Konten berita tidak dapat diakses (diblokir).\n"+
			"Tolong analisis berdasarkan URL ini saja: %s\n"+
			"Cobalah tebak lokasi dan buat narasi mendalam tentang topik yang ada di URL tersebut.", pageURL)
	}
	return input + `.
Tugas:
1. Identifikasi lokasi spesifik.
2. Tulis artikel/ringkasan yang panjang dan mendalam (minimal 3-4 paragraf). Jelaskan kronologi, penyebab, dan dampak secara rinci.
3. Cek validitas (hoaks/valid).`
}

// Analyze 调用模型并解析 JSON 结果
// 429 时指数退避重试，JSON 解析失败时直接重试
func (a *Analyzer) Analyze(ctx context.Context, input string) (*dm.Analysis, error) {
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: input},
		}

		resp, err := a.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) {
				metrics.ObserveLLM("rate_limited")
				lastErr = err
				if i < maxRetries {
					delay := a.baseDelay * time.Duration(1<<i)
					logger.Log.Warnf("LLM 触发限流，%v 后重试 (%d/%d)", delay, i+1, maxRetries)
					if err := sleep(ctx, delay); err != nil {
						return nil, err
					}
					continue
				}
			}
			metrics.ObserveLLM("error")
			return nil, fmt.Errorf("llm generate failed: %w", err)
		}

		analysis, err := parse(resp.Content)
		if err != nil {
			metrics.ObserveLLM("bad_json")
			logger.Log.Warnf("LLM 输出解析失败 (%d/%d): %v", i+1, maxRetries+1, err)
			lastErr = err
			continue
		}

		metrics.ObserveLLM("ok")
		return analysis, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func parse(content string) (*dm.Analysis, error) {
	clean := StripFences(content)
	if clean == "" {
		return nil, ErrEmptyResponse
	}

	// 模型偶尔给出小数分数
	var raw struct {
		dm.Analysis
		TrustScore float64 `json:"skor_kepercayaan"`
	}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal analysis failed: %w", err)
	}
	out := raw.Analysis
	out.TrustScore = int(math.Round(raw.TrustScore))
	Normalize(&out)
	return &out, nil
}

// StripFences 去掉模型习惯性包裹的 markdown 代码块
func StripFences(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// Normalize 约束信任状态和分数范围
func Normalize(a *dm.Analysis) {
	a.Location = strings.TrimSpace(a.Location)
	if !dm.ValidStatus(a.Validity) {
		a.Validity = dm.StatusVerify
	}
	if a.TrustScore < 0 {
		a.TrustScore = 0
	}
	if a.TrustScore > 100 {
		a.TrustScore = 100
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
