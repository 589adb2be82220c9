package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/internal/conf"
	dm "github.com/iWorld-y/news_locator/pkg/model"
)

// scriptedModel 按顺序返回预设的回复
type scriptedModel struct {
	replies []reply
	calls   int
	inputs  [][]*schema.Message
}

type reply struct {
	content string
	err     error
}

func (m *scriptedModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.inputs = append(m.inputs, input)
	r := m.replies[m.calls]
	if m.calls < len(m.replies)-1 {
		m.calls++
	}
	if r.err != nil {
		return nil, r.err
	}
	return &schema.Message{Role: schema.Assistant, Content: r.content}, nil
}

func (m *scriptedModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func newTestAnalyzer(m *scriptedModel) *Analyzer {
	a := New(m, nil)
	a.baseDelay = time.Millisecond
	return a
}

func TestAnalyzer_Analyze(t *testing.T) {
	m := &scriptedModel{replies: []reply{{content: "```json\n" + `{
		"lokasi_kejadian": " Jalan Sudirman, Jakarta Pusat ",
		"ringkasan_interaktif": "Kemacetan parah.",
		"status_validitas": "Terpercaya",
		"skor_kepercayaan": 87.6,
		"analisis_hoaks": "Sumber resmi."
	}` + "\n```"}}}

	got, err := newTestAnalyzer(m).Analyze(context.Background(), SearchPrompt("macet sudirman"))
	require.NoError(t, err)

	assert.Equal(t, &dm.Analysis{
		Location:     "Jalan Sudirman, Jakarta Pusat",
		Summary:      "Kemacetan parah.",
		Validity:     dm.StatusTrusted,
		TrustScore:   88,
		HoaxAnalysis: "Sumber resmi.",
	}, got)

	require.Len(t, m.inputs, 1)
	assert.Equal(t, schema.System, m.inputs[0][0].Role)
	assert.Contains(t, m.inputs[0][1].Content, "macet sudirman")
}

func TestAnalyzer_RetriesBadJSON(t *testing.T) {
	m := &scriptedModel{replies: []reply{
		{content: "Maaf, saya tidak bisa."},
		{content: ""},
		{content: `{"lokasi_kejadian":"Bandung","status_validitas":"valid","skor_kepercayaan":140}`},
	}}

	got, err := newTestAnalyzer(m).Analyze(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, m.inputs, 3)
	assert.Equal(t, "Bandung", got.Location)
	assert.Equal(t, dm.StatusVerify, got.Validity)
	assert.Equal(t, 100, got.TrustScore)
}

func TestAnalyzer_RateLimitBackoff(t *testing.T) {
	m := &scriptedModel{replies: []reply{
		{err: errors.New("error, status code: 429, message: quota")},
		{err: errors.New("Too Many Requests")},
		{content: `{"lokasi_kejadian":"Surabaya","status_validitas":"Indikasi Hoaks","skor_kepercayaan":-5}`},
	}}

	got, err := newTestAnalyzer(m).Analyze(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, m.inputs, 3)
	assert.Equal(t, dm.StatusHoax, got.Validity)
	assert.Equal(t, 0, got.TrustScore)
}

func TestAnalyzer_Failures(t *testing.T) {
	t.Run("non retryable error", func(t *testing.T) {
		m := &scriptedModel{replies: []reply{{err: errors.New("401 unauthorized")}}}
		_, err := newTestAnalyzer(m).Analyze(context.Background(), "x")
		require.Error(t, err)
		assert.Len(t, m.inputs, 1)
	})

	t.Run("rate limited until exhausted", func(t *testing.T) {
		m := &scriptedModel{replies: []reply{{err: errors.New("429")}}}
		_, err := newTestAnalyzer(m).Analyze(context.Background(), "x")
		require.Error(t, err)
		assert.Len(t, m.inputs, maxRetries+1)
	})

	t.Run("json never valid", func(t *testing.T) {
		m := &scriptedModel{replies: []reply{{content: "{"}}}
		_, err := newTestAnalyzer(m).Analyze(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max retries exceeded")
		assert.Len(t, m.inputs, maxRetries+1)
	})

	t.Run("cancelled during backoff", func(t *testing.T) {
		m := &scriptedModel{replies: []reply{{err: errors.New("429")}}}
		a := New(m, nil)
		a.baseDelay = time.Hour
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := a.Analyze(ctx, "x")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestURLPrompt(t *testing.T) {
	long := strings.Repeat("banjir ", 30)
	assert.Contains(t, URLPrompt(long, "https://x.id/a"), "ISI BERITA: "+long)
	short := URLPrompt("pendek", "https://x.id/a")
	assert.NotContains(t, short, "ISI BERITA")
	assert.Contains(t, short, "berdasarkan URL ini saja: https://x.id/a")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripFences(`  {"a":1} `))
}

func TestNewLimiter(t *testing.T) {
	assert.True(t, NewLimiter(nil).Allow())
	l := NewLimiter(&conf.Concurrency{Rpm: 60, Qps: 2})
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestNewFromConfig_MissingKey(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &conf.LLM{}, nil)
	assert.Error(t, err)
}
