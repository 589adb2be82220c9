package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Banjir Jakarta</title><script>var x = 1;</script></head>
<body>
<header><img src="https://cdn.example.com/assets/site-logo.png"></header>
<nav>Home | Nasional</nav>
<article>
<h1>Banjir rendam Kecamatan Cengkareng</h1>
<img src="//cdn.example.com/photos/banjir-cengkareng-1.jpg">
<img src="/a.png">
<img src="https://cdn.example.com/icons/share.svg">
<p>Banjir setinggi satu meter merendam ratusan rumah warga di Kecamatan Cengkareng, Jakarta Barat, sejak Senin pagi. Petugas gabungan mengevakuasi warga ke posko pengungsian terdekat.</p>
<p>Badan Penanggulangan Bencana Daerah mencatat curah hujan tinggi sejak Minggu malam menyebabkan Kali Angke meluap dan menggenangi permukiman di sepanjang bantaran sungai.</p>
<img src="https://cdn.example.com/photos/banjir-cengkareng-2.jpg">
<img src="https://cdn.example.com/photos/banjir-cengkareng-2.jpg">
</article>
<footer>Copyright</footer>
</body></html>`

func TestScraper_Extract(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	content := New("", 0).Extract(context.Background(), srv.URL+"/banjir")

	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Equal(t, []string{
		"https://cdn.example.com/photos/banjir-cengkareng-1.jpg",
		"https://cdn.example.com/photos/banjir-cengkareng-2.jpg",
	}, content.Images)
	assert.Contains(t, content.Text, "Kecamatan Cengkareng")
	assert.NotContains(t, content.Text, "var x")
	assert.NotContains(t, content.Text, "\n")
}

func TestScraper_ExtractFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(300 * time.Millisecond)
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := New("test-agent", 100*time.Millisecond)
	assert.Equal(t, Content{}, s.Extract(context.Background(), srv.URL+"/blocked"))
	assert.Equal(t, Content{}, s.Extract(context.Background(), srv.URL+"/slow"))
	assert.Equal(t, Content{}, s.Extract(context.Background(), "::not a url"))
}

func TestExtractImages_Limit(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, name := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		b.WriteString(`<img src="https://cdn.example.com/photos/` + name + `.jpg">`)
	}
	b.WriteString("</body></html>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	images := ExtractImages(doc)
	require.Len(t, images, MaxImages)
	assert.Equal(t, "https://cdn.example.com/photos/one.jpg", images[0])
	assert.Equal(t, "https://cdn.example.com/photos/five.jpg", images[4])
}

func TestFallbackText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><nav>menu</nav><div class="content">  Isi   berita
		utama </div><script>track()</script></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Isi berita utama", fallbackText(doc))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "éé", Truncate("ééé", 2))
	assert.Len(t, []rune(Truncate(strings.Repeat("a", 5000), MaxTextLen)), MaxTextLen)
}
