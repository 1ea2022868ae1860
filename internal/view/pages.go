package view

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"myspace/internal/core"
)

const (
	MsgLoading        = "Loading..."
	MsgNoData         = "No data available"
	MsgDayFailed      = "Failed to fetch data"
	MsgCalendarFailed = "Failed to fetch calendar data"
	MsgProjectsFailed = "Failed to fetch projects data"
)

type (
	// DayView is the Ready projection of the day page.
	DayView struct {
		Nav          core.DayNavigation
		IsToday      bool
		TodayHours   string
		TodayPercent string
		RunningHours string
		Running      bool
		MonthPercent string
		MonthHours   string
		Pace         string
		PaceClass    core.PaceClass
		Total        string
	}

	// CellView is one calendar grid cell.
	CellView struct {
		Day      int
		Link     string
		IsToday  bool
		HasHours bool
		Hours    string
		Money    string
	}

	// CalendarView is the Ready projection of the calendar page.
	CalendarView struct {
		Nav        core.NavigationLinks
		Weekdays   [7]string
		Weeks      [][7]CellView
		TotalHours string
		TotalMoney string
	}

	// ProjectRow is one project line of the projects table.
	ProjectRow struct {
		Source string
		Title  string
		Hours  string
		Money  string
	}

	// ProjectsView is the Ready projection of the projects page.
	ProjectsView struct {
		Nav             core.NavigationLinks
		Empty           bool
		Rows            []ProjectRow
		TotalHours      string
		TotalMoney      string
		ProjectedHours  string
		ProjectedIncome string
	}
)

// Builder projects payloads for one viewer: its currency and time zone.
type Builder struct {
	Currency core.Currency
	Location *time.Location
	Now      func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder(currency core.Currency, loc *time.Location) Builder {
	if currency == "" {
		currency = core.Dollar
	}
	if loc == nil {
		loc = time.Local
	}
	return Builder{Currency: currency, Location: loc, Now: time.Now}
}

// Today is the viewer's current date.
func (b Builder) Today() core.Date {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return core.Today(now(), b.Location)
}

func (b Builder) money(hours, rate float64) string {
	return b.Currency.Format(core.Earnings(hours, rate))
}

// Day projects a day payload. Navigation and the today flag come from the
// requested date and the viewer clock.
func (b Builder) Day(d core.Date, r core.DayReport) DayView {
	return DayView{
		Nav:          core.DayNav(d),
		IsToday:      d == b.Today(),
		TodayHours:   core.HourFormat(r.Hours),
		TodayPercent: core.Percent(r.TodayPercent),
		RunningHours: core.HourFormat(r.RunningHours),
		Running:      r.RunningHours > 0,
		MonthPercent: core.Percent(r.MonthPercent),
		MonthHours:   core.HourFormat(r.MonthHours),
		Pace:         core.HourFormat(math.Abs(r.Pace)),
		PaceClass:    core.ClassifyPace(r.Pace, r.DailyGoal),
		Total:        core.HourFormat(r.TotalHours()),
	}
}

// Calendar projects a calendar payload onto a Monday-first grid.
func (b Builder) Calendar(p core.Period, r core.CalendarReport) CalendarView {
	grid := core.BuildCalendar(p, r.HoursByDay(), b.Today())

	weeks := make([][7]CellView, len(grid.Weeks))
	for i, week := range grid.Weeks {
		for j, cell := range week {
			cv := CellView{Day: cell.Day, Link: cell.Link, IsToday: cell.IsToday}
			if cell.HasHours() {
				cv.HasHours = true
				cv.Hours = core.HourFormat(*cell.Hours)
				cv.Money = b.money(*cell.Hours, r.HourlyRate)
			}
			weeks[i][j] = cv
		}
	}

	total := r.Hours
	if total == 0 {
		for _, h := range r.HoursByDay() {
			total += h
		}
	}

	return CalendarView{
		Nav:        core.NavLinks(p, core.ModeCalendar),
		Weekdays:   core.Weekdays,
		Weeks:      weeks,
		TotalHours: core.HourFormat(total),
		TotalMoney: b.money(total, r.HourlyRate),
	}
}

// Projects projects a projects payload. Projects without tracked time are
// omitted; a zero total yields the empty placeholder.
func (b Builder) Projects(p core.Period, r core.ProjectsReport) ProjectsView {
	v := ProjectsView{
		Nav:   core.NavLinks(p, core.ModeProjects),
		Empty: r.TotalHours == 0,
	}
	if v.Empty {
		return v
	}

	for _, prj := range r.Projects {
		hours := prj.HoursOrDerived()
		if hours <= 0 {
			continue
		}
		v.Rows = append(v.Rows, ProjectRow{
			Source: prj.Source,
			Title:  prj.ProjectTitle,
			Hours:  core.HourFormat(hours),
			Money:  b.money(hours, r.HourlyRate),
		})
	}
	v.TotalHours = core.HourFormat(r.TotalHours)
	v.TotalMoney = b.money(r.TotalHours, r.HourlyRate)
	v.ProjectedHours = core.HourFormat(r.ProjectedHours)
	v.ProjectedIncome = b.Currency.Format(decimal.NewFromFloat(r.ProjectedIncome))
	return v
}

// DayPage resolves a day fetch into a renderable page.
func (b Builder) DayPage(d core.Date, s State[core.DayReport]) Page[DayView] {
	return Project(s, MsgDayFailed, func(r core.DayReport) DayView { return b.Day(d, r) })
}

// CalendarPage resolves a calendar fetch into a renderable page.
func (b Builder) CalendarPage(p core.Period, s State[core.CalendarReport]) Page[CalendarView] {
	return Project(s, MsgCalendarFailed, func(r core.CalendarReport) CalendarView { return b.Calendar(p, r) })
}

// ProjectsPage resolves a projects fetch into a renderable page.
func (b Builder) ProjectsPage(p core.Period, s State[core.ProjectsReport]) Page[ProjectsView] {
	return Project(s, MsgProjectsFailed, func(r core.ProjectsReport) ProjectsView { return b.Projects(p, r) })
}
