package display

import (
	"errors"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// NoticeKind distinguishes the user-facing failure conditions.
type NoticeKind string

const (
	NoticeEmptyQuery NoticeKind = "empty_query"
	NoticeNotFound   NoticeKind = "not_found"
	NoticeFailure    NoticeKind = "failure"
)

// Notice is an alert-style message shown when a search fails.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NoticeFor maps a pipeline error to the notice the user should see.
// Transport and decoding failures share the generic notice.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, weather.ErrEmptyQuery):
		return Notice{Kind: NoticeEmptyQuery, Message: "Please enter a city name!"}
	case errors.Is(err, weather.ErrNotFound):
		return Notice{Kind: NoticeNotFound, Message: "City not found! Please try again."}
	default:
		return Notice{Kind: NoticeFailure, Message: "Something went wrong! Please try again."}
	}
}
