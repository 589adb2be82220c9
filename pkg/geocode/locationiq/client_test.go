package locationiq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/pkg/geocode"
)

func TestClient_Lookup(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantErr  geocode.ErrorType
		validate func(*testing.T, *geocode.GeoResult)
	}{
		{
			name:   "first match",
			status: http.StatusOK,
			body: `[{"place_id":"1","lat":"-6.1753924","lon":"106.8271528",
				"display_name":"Monumen Nasional, Gambir, Jakarta Pusat, DKI Jakarta, Indonesia",
				"address":{"suburb":"Gambir","city":"Jakarta Pusat","state":"DKI Jakarta","country":"Indonesia"}},
				{"place_id":"2","lat":"0","lon":"0","display_name":"ignored"}]`,
			validate: func(t *testing.T, res *geocode.GeoResult) {
				assert.InDelta(t, -6.1753924, res.Lat, 1e-9)
				assert.InDelta(t, 106.8271528, res.Lon, 1e-9)
				assert.Equal(t, "Monumen Nasional, Gambir, Jakarta Pusat, DKI Jakarta, Indonesia", res.DisplayName)
				assert.Equal(t, "Jakarta Pusat", res.Components["city"])
			},
		},
		{
			name:   "missing address",
			status: http.StatusOK,
			body:   `[{"lat":"1.5","lon":"2.5","display_name":"x"}]`,
			validate: func(t *testing.T, res *geocode.GeoResult) {
				assert.NotNil(t, res.Components)
				assert.Empty(t, res.Components)
			},
		},
		{name: "empty array", status: http.StatusOK, body: `[]`, wantNil: true},
		{name: "unable to geocode", status: http.StatusNotFound, body: `{"error":"Unable to geocode"}`, wantNil: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"Rate Limited Second"}`, wantErr: geocode.ErrorTypeRateLimit},
		{name: "invalid key", status: http.StatusUnauthorized, body: `{"error":"Invalid key"}`, wantErr: geocode.ErrorTypeQuotaExceeded},
		{name: "server error", status: http.StatusBadGateway, body: ``, wantErr: geocode.ErrorTypeUnavailable},
		{name: "malformed json", status: http.StatusOK, body: `{"lat":`, wantErr: geocode.ErrorTypeDecode},
		{name: "bad coordinate", status: http.StatusOK, body: `[{"lat":"north","lon":"1"}]`, wantErr: geocode.ErrorTypeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-key", WithBaseURL(srv.URL))
			res, err := c.Lookup(context.Background(), "Monas, Indonesia", "id")

			if tt.wantErr != geocode.ErrorTypeUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, geocode.ErrorTypeOf(err))
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, res)
				return
			}
			require.NotNil(t, res)
			tt.validate(t, res)
		})
	}
}

func TestClient_LookupQueryParameters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"key":              q.Get("key"),
			"q":                q.Get("q"),
			"format":           q.Get("format"),
			"addressdetails":   q.Get("addressdetails"),
			"limit":            q.Get("limit"),
			"normalizeaddress": q.Get("normalizeaddress"),
			"countrycodes":     q.Get("countrycodes"),
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "Jalan Sudirman, Indonesia", "id")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"key":              "secret",
		"q":                "Jalan Sudirman, Indonesia",
		"format":           "json",
		"addressdetails":   "1",
		"limit":            "1",
		"normalizeaddress": "1",
		"countrycodes":     "id",
	}, got)
}

func TestClient_LookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.Lookup(context.Background(), "Monas", "id")
	require.Error(t, err)
	assert.Equal(t, geocode.ErrorTypeNetwork, geocode.ErrorTypeOf(err))
}
