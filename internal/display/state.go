package display

// DisplayState is the full set of rendered values. It is always derived from a
// single ForecastResponse and replaced as a whole.
type DisplayState struct {
	Location      string         `json:"location"`
	Date          string         `json:"date"`
	Temperature   string         `json:"temperature"`
	Condition     string         `json:"condition"`
	Icon          string         `json:"icon"`
	FeelsLike     string         `json:"feelsLike"`
	Humidity      string         `json:"humidity"`
	WindSpeed     string         `json:"windSpeed"`
	WindDirection string         `json:"windDirection"`
	Sunrise       string         `json:"sunrise"`
	Sunset        string         `json:"sunset"`
	Forecast      []ForecastCard `json:"forecast"`
}

// ForecastCard is one per-day summary card.
type ForecastCard struct {
	Day          string `json:"day"`
	Icon         string `json:"icon"`
	Condition    string `json:"condition"`
	High         string `json:"high"`
	Low          string `json:"low"`
	ChanceOfRain string `json:"chanceOfRain"`
	MaxWind      string `json:"maxWind"`
}

// Clone returns a copy that shares no memory with s.
func (s DisplayState) Clone() DisplayState {
	out := s
	if s.Forecast != nil {
		out.Forecast = make([]ForecastCard, len(s.Forecast))
		copy(out.Forecast, s.Forecast)
	}
	return out
}

// Surface is where a rendered state ends up (a page, a terminal, a test double).
type Surface interface {
	Show(state DisplayState)
}
