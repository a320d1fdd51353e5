package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DateLayout matches the "Fri Oct 16 2026" style of the page header.
const DateLayout = "Mon Jan 02 2006"

// dayLabels are assigned by position, not by the dates in the payload.
var dayLabels = []string{"Today", "Tomorrow", "Day After"}

// Project maps a response onto display slots. now supplies the date label.
func Project(data weather.ForecastResponse, now time.Time) DisplayState {
	state := DisplayState{
		Location:      fmt.Sprintf("%s, %s", data.Location.Name, data.Location.Country),
		Date:          now.Format(DateLayout),
		Temperature:   celsius(data.Current.TempC),
		Condition:     data.Current.Condition.Text,
		Icon:          IconURL(data.Current.Condition.Icon),
		FeelsLike:     celsius(data.Current.FeelsLikeC),
		Humidity:      percent(data.Current.Humidity),
		WindSpeed:     kph(data.Current.WindKph),
		WindDirection: data.Current.WindDir,
		Sunrise:       data.Astronomy.Sunrise,
		Sunset:        data.Astronomy.Sunset,
		Forecast:      make([]ForecastCard, 0, len(data.Days)),
	}

	for i, day := range data.Days {
		state.Forecast = append(state.Forecast, ForecastCard{
			Day:          DayLabel(i, day.Date),
			Icon:         IconURL(day.Condition.Icon),
			Condition:    day.Condition.Text,
			High:         degrees(day.MaxTempC),
			Low:          degrees(day.MinTempC),
			ChanceOfRain: percent(day.ChanceOfRain),
			MaxWind:      kph(day.MaxWindKph),
		})
	}

	return state
}

// DayLabel names the card at position i. Past the third card it falls back to
// the payload date, then to "Day N".
func DayLabel(i int, date string) string {
	if i >= 0 && i < len(dayLabels) {
		return dayLabels[i]
	}
	if date != "" {
		return date
	}
	return fmt.Sprintf("Day %d", i+1)
}

// IconURL qualifies protocol-relative icon paths with https.
func IconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return int(f)
}

func celsius(v float64) string {
	return fmt.Sprintf("%d°C", Round(v))
}

func degrees(v float64) string {
	return fmt.Sprintf("%d°", Round(v))
}

func kph(v float64) string {
	return fmt.Sprintf("%d km/h", Round(v))
}

func percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
