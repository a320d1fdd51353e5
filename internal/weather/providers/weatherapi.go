package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultWeatherAPIBaseURL is the public WeatherAPI.com v1 endpoint.
const DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements weather.Fetcher for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Fetcher = (*WeatherAPIProvider)(nil)

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// weatherAPICondition is the condition object shared by current and daily data.
type weatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// weatherAPIForecast mirrors the subset of forecast.json the dashboard reads.
// Location and Current are pointers so a missing object is detectable.
type weatherAPIForecast struct {
	Location *struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current *struct {
		TempC      float64             `json:"temp_c"`
		FeelslikeC float64             `json:"feelslike_c"`
		Humidity   int                 `json:"humidity"`
		WindKph    float64             `json:"wind_kph"`
		WindDir    string              `json:"wind_dir"`
		Condition  weatherAPICondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64             `json:"maxtemp_c"`
				MinTempC          float64             `json:"mintemp_c"`
				MaxWindKph        float64             `json:"maxwind_kph"`
				DailyChanceOfRain int                 `json:"daily_chance_of_rain"`
				Condition         weatherAPICondition `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// weatherAPIError is the body WeatherAPI.com sends with 4xx answers.
type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchForecast requests current conditions plus a days-long forecast for query.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, query string, days int) (weather.ForecastResponse, error) {
	tracer := otel.Tracer("weather-dashboard/providers")
	ctx, span := tracer.Start(ctx, "weatherapi: fetch-forecast")
	defer span.End()

	span.SetAttributes(attribute.String("weather.query", query))

	if p.apiKey == "" {
		err := fmt.Errorf("%w: weatherapi api key is not configured", weather.ErrTransport)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing api key")
		return weather.ForecastResponse{}, err
	}
	if days <= 0 {
		days = weather.ForecastWindow
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query)
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	u := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		err = fmt.Errorf("%w: failed to create request: %v", weather.ErrTransport, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return weather.ForecastResponse{}, err
	}

	raw, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return weather.ForecastResponse{}, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", raw.status))

	if raw.status != http.StatusOK {
		err := notFoundError(raw)
		span.RecordError(err)
		span.SetStatus(codes.Error, "query rejected")
		return weather.ForecastResponse{}, err
	}

	resp, err := decodeWeatherAPIForecast(raw.body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		return weather.ForecastResponse{}, err
	}

	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// notFoundError keeps the service's own explanation when the body has one.
func notFoundError(raw rawResponse) error {
	var apiErr weatherAPIError
	if err := json.Unmarshal(raw.body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("%w: %s (status %d)", weather.ErrNotFound, apiErr.Error.Message, raw.status)
	}
	return fmt.Errorf("%w: status %d", weather.ErrNotFound, raw.status)
}

func decodeWeatherAPIForecast(body []byte) (weather.ForecastResponse, error) {
	var payload weatherAPIForecast
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.ForecastResponse{}, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	if payload.Location == nil || payload.Current == nil {
		return weather.ForecastResponse{}, fmt.Errorf("%w: missing location or current conditions", weather.ErrMalformedResponse)
	}

	resp := weather.ForecastResponse{
		Location: weather.Location{
			Name:    payload.Location.Name,
			Country: payload.Location.Country,
		},
		Current: weather.Current{
			TempC:      payload.Current.TempC,
			FeelsLikeC: payload.Current.FeelslikeC,
			Humidity:   payload.Current.Humidity,
			WindKph:    payload.Current.WindKph,
			WindDir:    payload.Current.WindDir,
			Condition:  weather.Condition(payload.Current.Condition),
		},
		Days: make([]weather.ForecastDay, 0, len(payload.Forecast.ForecastDay)),
	}

	for i, fd := range payload.Forecast.ForecastDay {
		// Sunrise and sunset of the first day describe "today".
		if i == 0 {
			resp.Astronomy = weather.Astronomy{
				Sunrise: fd.Astro.Sunrise,
				Sunset:  fd.Astro.Sunset,
			}
		}
		resp.Days = append(resp.Days, weather.ForecastDay{
			Date:         fd.Date,
			MaxTempC:     fd.Day.MaxTempC,
			MinTempC:     fd.Day.MinTempC,
			Condition:    weather.Condition(fd.Day.Condition),
			ChanceOfRain: fd.Day.DailyChanceOfRain,
			MaxWindKph:   fd.Day.MaxWindKph,
		})
	}

	if err := resp.Validate(); err != nil {
		return weather.ForecastResponse{}, err
	}
	return resp, nil
}
