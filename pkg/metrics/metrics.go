package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentredi",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled by the API, by route template and status.",
		},
		[]string{"method", "route", "status"},
	)

	weatherLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentredi",
			Name:      "weather_lookups_total",
			Help:      "Zip code lookups against OpenWeather, by outcome.",
		},
		[]string{"outcome"},
	)
)

// ObserveRequest counts one handled request. route is the matched template, e.g. /users/:id.
func ObserveRequest(method, route string, status int) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func ObserveWeatherLookup(err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	weatherLookupsTotal.WithLabelValues(outcome).Inc()
}

// RequestCount and WeatherLookupCount read the current counter values.
func RequestCount(method, route string, status int) float64 {
	return counterValue(httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)))
}

func WeatherLookupCount(outcome string) float64 {
	return counterValue(weatherLookupsTotal.WithLabelValues(outcome))
}
