package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"query":"gempa","images":["https://img/1.jpg"],"results":[
			{"title":"Gempa Cianjur","url":"https://www.kompas.com/a","content":"c1","score":0.9},
			{"title":"Gempa Garut","url":"https://detik.com/b","content":"c2","score":0.5}]}`))
	}))
	defer srv.Close()

	c := NewClient("tvly-key").WithBaseURL(srv.URL)
	resp, err := c.Search(context.Background(), &search.Request{Query: "gempa", MaxResults: 2})
	require.NoError(t, err)

	assert.Equal(t, "gempa", got.Query)
	assert.Equal(t, "news", got.Topic)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.True(t, got.IncludeImages)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "kompas.com", resp.Results[0].Source)
	assert.Equal(t, "https://img/1.jpg", resp.Results[0].Image)
	assert.Equal(t, search.PlaceholderImage, resp.Results[1].Image)
	assert.InDelta(t, 0.9, resp.Results[0].Score, 1e-9)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid key"}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad").WithBaseURL(srv.URL).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
