package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "news", r.URL.Query().Get("categories"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"query":"banjir","results":[
			{"title":"A","url":"https://www.antaranews.com/a","content":"a","thumbnail":"https://img/a.jpg"},
			{"title":"B","url":"https://tempo.co/b","content":"b","img_src":"https://img/b.jpg"},
			{"title":"C","url":"https://tempo.co/c","content":"c"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5)
	resp, err := c.Search(context.Background(), &search.Request{Query: "banjir", MaxResults: 3})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "antaranews.com", resp.Results[0].Source)
	assert.Equal(t, "https://img/a.jpg", resp.Results[0].Image)
	assert.Equal(t, "https://img/b.jpg", resp.Results[1].Image)
	assert.Equal(t, search.PlaceholderImage, resp.Results[2].Image)

	resp, err = c.Search(context.Background(), &search.Request{Query: "banjir", MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
