package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myspace/internal/backend"
	"myspace/internal/cache"
	"myspace/internal/cli/formatter"
	"myspace/internal/config"
	"myspace/internal/core"
	applog "myspace/internal/log"
	"myspace/internal/source"
	"myspace/internal/view"
)

// ErrPageFailed is returned by one-shot commands whose page resolved to
// Failed, so the process exits non-zero after printing the error state.
var ErrPageFailed = errors.New("page failed to load")

// App holds what the commands share: configuration, the data backend and
// the terminal formatter.
type App struct {
	Config *config.Config
	Logger *applog.Logger
	Reader source.Reader
	Views  view.Builder
	Caches *cache.Manager
	Format formatter.Formatter

	cleanup backend.CleanupFunc
}

// NewApp builds the backend selected by cfg and the viewer's page builder.
// Close releases the backend.
func NewApp(ctx context.Context, cfg *config.Config, logger *applog.Logger, color bool) (*App, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	caches := cache.NewManager(logger)
	result, err := backend.NewFactory(logger, caches).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger.WithComponent(applog.ComponentCLI),
		Reader:  result.Backend,
		Views:   view.NewBuilder(core.Currency(cfg.CurrencySymbol), loc),
		Caches:  caches,
		Format:  formatter.New(color),
		cleanup: result.Cleanup,
	}, nil
}

// Close stops cache cleanup and releases the backend.
func (a *App) Close() error {
	if a.Caches != nil {
		a.Caches.Stop()
	}
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}

func (a *App) apiTimeout() time.Duration {
	if a.Config == nil || a.Config.APITimeout <= 0 {
		return 10 * time.Second
	}
	return a.Config.APITimeout
}

func (a *App) reloadInterval() time.Duration {
	if a.Config == nil || a.Config.DayReloadInterval <= 0 {
		return 120 * time.Second
	}
	return a.Config.DayReloadInterval
}

// load runs one bounded fetch and logs a failure with the page's fields.
func load[T any](ctx context.Context, a *App, page string, fields applog.LogFields, fetch func(context.Context) (T, error)) view.State[T] {
	ctx, cancel := context.WithTimeout(ctx, a.apiTimeout())
	defer cancel()

	state := view.Load(ctx, fetch)
	if state.Status() == view.Failed {
		applog.NewStructuredLogger(a.Logger).LogFetchError(ctx, page, state.Err(), fields)
	}
	return state
}

func (a *App) loadDay(ctx context.Context, d core.Date) view.Page[view.DayView] {
	s := load(ctx, a, "day", applog.NewFields().WithDate(d.Year, int(d.Month), d.Day), func(ctx context.Context) (core.DayReport, error) {
		return a.Reader.ReadDay(ctx, d)
	})
	return a.Views.DayPage(d, s)
}

func (a *App) loadCalendar(ctx context.Context, p core.Period) view.Page[view.CalendarView] {
	s := load(ctx, a, "calendar", applog.NewFields().WithPeriod(p.Year, int(p.Month)), func(ctx context.Context) (core.CalendarReport, error) {
		return a.Reader.ReadCalendar(ctx, p)
	})
	return a.Views.CalendarPage(p, s)
}

func (a *App) loadProjects(ctx context.Context, p core.Period) view.Page[view.ProjectsView] {
	s := load(ctx, a, "projects", applog.NewFields().WithPeriod(p.Year, int(p.Month)), func(ctx context.Context) (core.ProjectsReport, error) {
		return a.Reader.ReadProjects(ctx, p)
	})
	return a.Views.ProjectsPage(p, s)
}

// parseDateArg accepts "2024-03-15" or "2024/3/15".
func parseDateArg(arg string) (core.Date, error) {
	parts := splitArg(arg)
	if len(parts) != 3 {
		return core.Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", arg)
	}
	d, err := core.ParseDate(parts[0], parts[1], parts[2])
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: %w", arg, err)
	}
	return d, nil
}

// parsePeriodArg accepts "2024-03" or "2024/3".
func parsePeriodArg(arg string) (core.Period, error) {
	parts := splitArg(arg)
	if len(parts) != 2 {
		return core.Period{}, fmt.Errorf("invalid month %q: want YYYY-MM", arg)
	}
	p, err := core.ParsePeriod(parts[0], parts[1])
	if err != nil {
		return core.Period{}, fmt.Errorf("invalid month %q: %w", arg, err)
	}
	return p, nil
}

func splitArg(arg string) []string {
	return strings.FieldsFunc(arg, func(r rune) bool { return r == '-' || r == '/' })
}
