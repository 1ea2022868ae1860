package http

import (
	"context"
	"net/http"
	"sync/atomic"

	"myspace/internal/core"
	applog "myspace/internal/log"
	"myspace/internal/middleware/trace"
	"myspace/internal/view"
)

// shellData feeds the page shells. The shell renders the Loading state and
// asks htmx to fetch PartialURL once on load.
type shellData struct {
	Title         string
	Tab           string
	PartialURL    string
	Loading       string
	ReloadSeconds int
	DayNav        *core.DayNavigation
	MonthNav      *core.NavigationLinks
}

const (
	tabToday = "today"
	tabMonth = "month"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.redirect(w, r, "/today")
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	s.redirect(w, r, s.views.Today().Link())
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	s.redirect(w, r, s.views.Today().Period().ModeLink(core.ModeProjects))
}

// handleMonthRedirect sends a bare /{year}/{month} to its projects page.
func (s *Server) handleMonthRedirect(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.redirect(w, r, p.ModeLink(core.ModeProjects))
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, to string) {
	s.requestLogger(r).DebugContext(r.Context(), "Redirecting",
		applog.FieldOperation, applog.OpRedirect,
		applog.FieldPath, r.URL.Path,
		"location", to)
	http.Redirect(w, r, to, http.StatusFound)
}

func (s *Server) handleDayPage(w http.ResponseWriter, r *http.Request) {
	d, err := ParseDateParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	nav := core.DayNav(d)
	tab := ""
	if d == s.views.Today() {
		tab = tabToday
	}
	s.renderShell(w, r, "day_page", shellData{
		Title:         d.String(),
		Tab:           tab,
		PartialURL:    "/ui" + d.Link(),
		Loading:       view.MsgLoading,
		ReloadSeconds: int(s.cfg.DayReloadInterval.Seconds()),
		DayNav:        &nav,
	})
}

func (s *Server) handleCalendarPage(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	nav := core.NavLinks(p, core.ModeCalendar)
	s.renderShell(w, r, "calendar_page", shellData{
		Title:      p.Caption(),
		Tab:        tabMonth,
		PartialURL: "/ui" + p.ModeLink(core.ModeCalendar),
		Loading:    view.MsgLoading,
		MonthNav:   &nav,
	})
}

func (s *Server) handleProjectsPage(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	nav := core.NavLinks(p, core.ModeProjects)
	s.renderShell(w, r, "projects_page", shellData{
		Title:      p.Caption(),
		Tab:        tabMonth,
		PartialURL: "/ui" + p.ModeLink(core.ModeProjects),
		Loading:    view.MsgLoading,
		MonthNav:   &nav,
	})
}

func (s *Server) handleDayPartial(w http.ResponseWriter, r *http.Request) {
	d, err := ParseDateParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	state := view.Load(ctx, func(ctx context.Context) (core.DayReport, error) {
		return s.reader.ReadDay(ctx, d)
	})
	if state.Status() == view.Failed {
		s.logFetchFailure(r, "day", state.Err(), applog.NewFields().WithDate(d.Year, int(d.Month), d.Day))
	}
	s.renderPartial(w, r, "day_content", s.views.DayPage(d, state), state.Status())
}

func (s *Server) handleCalendarPartial(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	state := view.Load(ctx, func(ctx context.Context) (core.CalendarReport, error) {
		return s.reader.ReadCalendar(ctx, p)
	})
	if state.Status() == view.Failed {
		s.logFetchFailure(r, "calendar", state.Err(), applog.NewFields().WithPeriod(p.Year, int(p.Month)))
	}
	s.renderPartial(w, r, "calendar_content", s.views.CalendarPage(p, state), state.Status())
}

func (s *Server) handleProjectsPartial(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	state := view.Load(ctx, func(ctx context.Context) (core.ProjectsReport, error) {
		return s.reader.ReadProjects(ctx, p)
	})
	if state.Status() == view.Failed {
		s.logFetchFailure(r, "projects", state.Err(), applog.NewFields().WithPeriod(p.Year, int(p.Month)))
	}
	s.renderPartial(w, r, "projects_content", s.views.ProjectsPage(p, state), state.Status())
}

func (s *Server) renderShell(w http.ResponseWriter, r *http.Request, name string, data shellData) {
	b := NewHTMXResponse().Template(s.templates, name, data)
	if err := b.Err(); err != nil {
		s.logTemplateError(r, name, err)
	}
	b.Write(w)
}

// renderPartial writes a resolved page. Failed pages are still a successful
// render of the error state, so the status stays 200.
func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any, status view.Status) {
	b := NewHTMXResponse().Template(s.templates, name, data)
	if err := b.Err(); err != nil {
		s.logTemplateError(r, name, err)
	} else {
		atomic.AddInt64(&s.appMetrics.pagesRendered, 1)
		if status == view.Failed {
			atomic.AddInt64(&s.appMetrics.fetchFailures, 1)
		}
	}
	b.Write(w)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.requestLogger(r).WarnContext(r.Context(), "Invalid route parameters",
		applog.FieldPath, r.URL.Path,
		applog.FieldError, err.Error(),
		applog.FieldErrorType, applog.ErrorTypeValidation,
		applog.FieldOperation, applog.OpParse)
	BadRequestError(InvalidParamMessage(err)).Write(w)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.requestLogger(r).DebugContext(r.Context(), "No route",
		applog.FieldPath, r.URL.Path)
	NotFoundError("Page not found").Write(w)
}

func (s *Server) logFetchFailure(r *http.Request, page string, err error, fields applog.LogFields) {
	s.structuredLogger.LogFetchError(r.Context(), page, err,
		fields.WithRequestID(trace.GetRequestID(r.Context())).WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery))
}

func (s *Server) logTemplateError(r *http.Request, name string, err error) {
	s.structuredLogger.LogError(r.Context(), "Template execution failed", err,
		applog.ComponentTemplate, applog.OpRender,
		applog.NewFields().WithErrorType(applog.ErrorTypeTemplate).WithPage(name))
}
