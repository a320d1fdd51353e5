package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/display"
	"github.com/i474232898/weather-dashboard/internal/radix"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service, board *store.Board) {
	app.Get("/", func(c *fiber.Ctx) error {
		return renderPage(c, service, board)
	})

	// Form target for the page; the outcome shows up on the redirected page.
	app.Get("/search", func(c *fiber.Ctx) error {
		_ = service.Search(c.UserContext(), c.Query("q"))
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		state, err := board.Current()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data rendered yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
		}
		return c.JSON(state)
	})

	search := func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			query = c.FormValue("q")
		}

		err := service.Search(c.UserContext(), query)
		switch {
		case err == nil, errors.Is(err, dashboard.ErrSuperseded):
			state, cerr := board.Current()
			if cerr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
			}
			return c.JSON(state)
		default:
			// The caller gets the notice in the response, so the page does not
			// show it again.
			board.TakeNotice()
			notice := display.NoticeFor(err)
			return c.Status(statusFor(err)).JSON(fiber.Map{
				"error":   true,
				"kind":    notice.Kind,
				"message": notice.Message,
			})
		}
	}
	v1.Get("/weather/search", search)
	v1.Post("/weather/search", search)

	v1.Get("/convert", func(c *fiber.Ctx) error {
		req := convertQuery{
			Number: c.Query("number"),
			From:   c.Query("from"),
			To:     c.Query("to"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		from, err := radix.ParseBase(req.From)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		to, err := radix.ParseBase(req.To)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := radix.Convert(req.Number, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
		}

		return c.JSON(fiber.Map{
			"number": req.Number,
			"from":   req.From,
			"to":     req.To,
			"result": result,
		})
	})
}

// convertQuery holds query parameters for the radix endpoint.
type convertQuery struct {
	Number string `validate:"required"`
	From   string `validate:"required,oneof=binary octal decimal hexadecimal"`
	To     string `validate:"required,oneof=binary octal decimal hexadecimal"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, weather.ErrEmptyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

// SearchURL builds the page search link for query.
func SearchURL(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}
