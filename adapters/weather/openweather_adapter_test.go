package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
	"github.com/khoahotran/rentredi/pkg/metrics"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *url.URL) {
	t.Helper()
	captured := &url.URL{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = *r.URL
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestLookup_Success(t *testing.T) {
	srv, reqURL := newServer(t, http.StatusOK, `{"coord":{"lon":-74.01,"lat":40.71},"timezone":-14400,"name":"New York"}`)
	a := NewOpenWeatherAdapter(srv.URL, "key-123", time.Second, logger.NewNop())
	before := metrics.WeatherLookupCount(metrics.OutcomeSuccess)

	loc, err := a.Lookup(context.Background(), "10001")
	require.NoError(t, err)

	assert.Equal(t, 40.71, *loc.Latitude)
	assert.Equal(t, -74.01, *loc.Longitude)
	assert.Equal(t, -14400, *loc.TimezoneOffset)

	assert.Equal(t, "/weather", reqURL.Path)
	assert.Equal(t, "10001", reqURL.Query().Get("zip"))
	assert.Equal(t, "key-123", reqURL.Query().Get("appid"))
	assert.Equal(t, before+1, metrics.WeatherLookupCount(metrics.OutcomeSuccess))
}

func TestLookup_MissingFieldsStayAbsent(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"name":"Nowhere"}`)
	a := NewOpenWeatherAdapter(srv.URL, "k", time.Second, logger.NewNop())

	loc, err := a.Lookup(context.Background(), "00000")
	require.NoError(t, err)
	assert.Nil(t, loc.Latitude)
	assert.Nil(t, loc.Longitude)
	assert.Nil(t, loc.TimezoneOffset)
}

func TestLookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"provider message", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, "Invalid zip code or OpenWeather error: city not found"},
		{"object without message", http.StatusUnauthorized, `{"cod":401}`, "Invalid zip code or OpenWeather error: OpenWeather error"},
		{"plain text body", http.StatusBadGateway, `upstream down`, "Invalid zip code or OpenWeather error: upstream down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			a := NewOpenWeatherAdapter(srv.URL, "k", time.Second, logger.NewNop())
			before := metrics.WeatherLookupCount(metrics.OutcomeError)

			_, err := a.Lookup(context.Background(), "99999")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrUpstream)
			assert.Equal(t, tt.wantMsg, apperror.Message(err))
			assert.Equal(t, before+1, metrics.WeatherLookupCount(metrics.OutcomeError))
		})
	}
}

func TestLookup_MalformedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{not json`)
	a := NewOpenWeatherAdapter(srv.URL, "k", time.Second, logger.NewNop())

	_, err := a.Lookup(context.Background(), "10001")
	require.Error(t, err)
	assert.Contains(t, apperror.Message(err), "Invalid zip code or OpenWeather error: ")
}

func TestLookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	a := NewOpenWeatherAdapter(srv.URL, "k", 50*time.Millisecond, logger.NewNop())

	_, err := a.Lookup(context.Background(), "10001")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}
