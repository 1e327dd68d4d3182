package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
	"github.com/khoahotran/rentredi/pkg/metrics"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 10 * time.Second

	errorPrefix     = "Invalid zip code or OpenWeather error: "
	fallbackMessage = "OpenWeather error"
)

type OpenWeatherAdapter struct {
	client *resty.Client
	apiKey string
	logger logger.Logger
}

// NewOpenWeatherAdapter resolves zip codes through the current weather endpoint.
// Empty baseURL or zero timeout fall back to the public API and 10 seconds.
func NewOpenWeatherAdapter(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *OpenWeatherAdapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &OpenWeatherAdapter{client: c, apiKey: apiKey, logger: log}
}

var _ location.Lookup = (*OpenWeatherAdapter)(nil)

type weatherResponse struct {
	Coord *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
	Timezone *int `json:"timezone"`
}

func (a *OpenWeatherAdapter) Lookup(ctx context.Context, zipCode string) (loc location.Location, err error) {
	defer func() { metrics.ObserveWeatherLookup(err) }()

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"zip":   zipCode,
			"appid": a.apiKey,
		}).
		Get("/weather")
	if err != nil {
		return location.Location{}, a.fail(zipCode, err.Error(), err)
	}
	if resp.IsError() {
		detail := errorDetail(resp.Body())
		if detail == "" {
			detail = resp.Status()
		}
		return location.Location{}, a.fail(zipCode, detail, fmt.Errorf("openweather status %d", resp.StatusCode()))
	}

	var wr weatherResponse
	if err := json.Unmarshal(resp.Body(), &wr); err != nil {
		return location.Location{}, a.fail(zipCode, err.Error(), err)
	}

	loc.TimezoneOffset = wr.Timezone
	if wr.Coord != nil {
		loc.Latitude = wr.Coord.Lat
		loc.Longitude = wr.Coord.Lon
	}
	return loc, nil
}

func (a *OpenWeatherAdapter) fail(zipCode, detail string, cause error) error {
	a.logger.Error("OpenWeather lookup failed", cause, zap.String("zip_code", zipCode))
	return apperror.NewUpstream(errorPrefix+detail, "weather lookup for zip "+zipCode, cause)
}

// errorDetail extracts the provider message: the "message" field of a JSON object body,
// "OpenWeather error" for an object without one, otherwise the raw body text.
func errorDetail(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
		return fallbackMessage
	}
	return strings.TrimSpace(string(body))
}
