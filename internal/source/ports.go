package source

import (
	"context"

	"myspace/internal/core"
)

// Ports for outbound adapters. Implementations wrap every failure with
// core.ErrFetchFailed.
type (
	// DayReader returns the figures shown on a day page.
	DayReader interface {
		ReadDay(ctx context.Context, d core.Date) (core.DayReport, error)
	}

	// CalendarReader returns the per-day hours of a month.
	CalendarReader interface {
		ReadCalendar(ctx context.Context, p core.Period) (core.CalendarReport, error)
	}

	// ProjectsReader returns the per-project breakdown of a month.
	ProjectsReader interface {
		ReadProjects(ctx context.Context, p core.Period) (core.ProjectsReport, error)
	}

	// Reader combines the three page sources.
	Reader interface {
		DayReader
		CalendarReader
		ProjectsReader
	}
)
