package weather

import "fmt"

// ForecastWindow is the number of days requested per fetch.
const ForecastWindow = 3

// Location identifies the place the service resolved a query to.
type Location struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Condition is a text label plus an icon reference as returned by the service.
// Icon paths are usually protocol-relative ("//cdn...").
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Current holds the current conditions for a location.
type Current struct {
	TempC      float64   `json:"tempC"`
	FeelsLikeC float64   `json:"feelsLikeC"`
	Humidity   int       `json:"humidity"` // percent, 0-100
	WindKph    float64   `json:"windKph"`
	WindDir    string    `json:"windDir"`
	Condition  Condition `json:"condition"`
}

// Astronomy carries formatted local sunrise/sunset times.
type Astronomy struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// ForecastDay is a single per-day summary.
type ForecastDay struct {
	Date         string    `json:"date"`
	MaxTempC     float64   `json:"maxTempC"`
	MinTempC     float64   `json:"minTempC"`
	Condition    Condition `json:"condition"`
	ChanceOfRain int       `json:"chanceOfRain"`
	MaxWindKph   float64   `json:"maxWindKph"`
}

// ForecastResponse is the normalized payload of one fetch.
// Days are ordered as received.
type ForecastResponse struct {
	Location  Location      `json:"location"`
	Current   Current       `json:"current"`
	Astronomy Astronomy     `json:"astronomy"`
	Days      []ForecastDay `json:"days"`
}

// Validate reports whether the response carries enough data to be displayed.
func (r ForecastResponse) Validate() error {
	if r.Location.Name == "" {
		return fmt.Errorf("%w: missing location name", ErrMalformedResponse)
	}
	if len(r.Days) == 0 {
		return fmt.Errorf("%w: no forecast days", ErrMalformedResponse)
	}
	return nil
}
