package httpapi

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/display"
	"github.com/i474232898/weather-dashboard/internal/store"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weather Dashboard</title>
</head>
<body>
<form action="/search" method="get">
  <input id="cityInput" name="q" type="text" placeholder="Enter city name">
  <button id="searchBtn" type="submit">Search</button>
</form>
{{with .Notice}}<div id="alert" class="alert {{.Kind}}" role="alert">{{.Message}}</div>{{end}}
{{with .State}}
<section id="current">
  <h2 id="location">{{.Location}}</h2>
  <p id="date">{{.Date}}</p>
  <img id="weatherIcon" src="{{.Icon}}" alt="{{.Condition}}">
  <p id="temperature">{{.Temperature}}</p>
  <p id="condition">{{.Condition}}</p>
  <ul>
    <li>Feels like <span id="feelsLike">{{.FeelsLike}}</span></li>
    <li>Humidity <span id="humidity">{{.Humidity}}</span></li>
    <li>Wind <span id="windSpeed">{{.WindSpeed}}</span> <span id="windDirection">{{.WindDirection}}</span></li>
    <li>Sunrise <span id="sunrise">{{.Sunrise}}</span></li>
    <li>Sunset <span id="sunset">{{.Sunset}}</span></li>
  </ul>
</section>
<section id="forecast">
{{range .Forecast}}  <div class="forecast-card">
    <h3>{{.Day}}</h3>
    <img src="{{.Icon}}" alt="{{.Condition}}">
    <p>{{.Condition}}</p>
    <p>{{.High}} / {{.Low}}</p>
    <p>Rain {{.ChanceOfRain}}</p>
    <p>Wind {{.MaxWind}}</p>
  </div>
{{end}}</section>
{{end}}
{{with .RefreshURL}}<a id="refresh" href="{{.}}">Refresh</a>{{end}}
</body>
</html>
`))

type pageData struct {
	State      *display.DisplayState
	Notice     *display.Notice
	RefreshURL string
}

func renderPage(c *fiber.Ctx, service *dashboard.Service, board *store.Board) error {
	var data pageData

	if state, err := board.Current(); err == nil {
		data.State = &state
	}
	if n, ok := board.TakeNotice(); ok {
		data.Notice = &n
	}
	if q := service.CurrentQuery(); q != "" {
		data.RefreshURL = SearchURL(q)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
