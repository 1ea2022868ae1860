// Package http provides HTTP server and handler implementations.
//
// This file extracts and validates the year/month/day path segments shared
// by the page shells and their htmx partials.

package http

import (
	"errors"
	"net/http"

	"myspace/internal/core"
)

// ParseDateParams reads the {year}/{month}/{day} path values.
func ParseDateParams(r *http.Request) (core.Date, error) {
	return core.ParseDate(r.PathValue("year"), r.PathValue("month"), r.PathValue("day"))
}

// ParseMonthParams reads the {year}/{month} path values.
func ParseMonthParams(r *http.Request) (core.Period, error) {
	return core.ParsePeriod(r.PathValue("year"), r.PathValue("month"))
}

// InvalidParamMessage maps a parse error onto the user-facing 400 message.
func InvalidParamMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidYear):
		return "Invalid year"
	case errors.Is(err, core.ErrInvalidMonth):
		return "Invalid month"
	case errors.Is(err, core.ErrInvalidDay):
		return "Invalid day"
	default:
		return "Invalid request"
	}
}
