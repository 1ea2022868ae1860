package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myspace/internal/core"
	"myspace/internal/view"
)

var (
	march15 = core.Date{Year: 2024, Month: time.March, Day: 15}
	march   = core.Period{Year: 2024, Month: time.March}
)

func builder() view.Builder {
	b := view.NewBuilder(core.Dollar, time.UTC)
	b.Now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }
	return b
}

func resolved[T any](data T, err error) view.State[T] {
	var s view.State[T]
	s.Resolve(data, err)
	return s
}

func TestRenderTableAlignsColumns(t *testing.T) {
	f := New(false)
	out := f.RenderTable(
		[]string{"Name", "Hours"},
		[][]string{{"Website", "2:30"}, {"API", "10:00"}},
		[][]string{{"Total", "12:30"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Name     Hours", lines[0])
	assert.Equal(t, "───────  ─────", lines[1])
	assert.Equal(t, "Website  2:30", lines[2])
	assert.Equal(t, "API      10:00", lines[3])
	assert.Equal(t, lines[1], lines[4])
	assert.Equal(t, "Total    12:30", lines[5])
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, New(false).RenderTable(nil, [][]string{{"x"}}, nil))
}

func TestFormatDayReady(t *testing.T) {
	b := builder()
	page := b.DayPage(march15, resolved(core.DayReport{
		Hours: 3.25, RunningHours: 0.5, TodayPercent: 40,
		MonthPercent: 55, MonthHours: 80.5, Pace: -9, DailyGoal: 8,
	}, nil))

	out := New(false).FormatDay(march15, page)

	for _, want := range []string{"March 15, 2024 (today)", "3:15", "40%", "Running", "0:30", "80:30", "55%", "9:00", "behind", "3:45", "2024-03-14", "2024-03-16"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "color disabled")
}

func TestFormatDayWithoutRunningTimer(t *testing.T) {
	page := builder().DayPage(march15.Prev(), resolved(core.DayReport{Hours: 1, Pace: 2}, nil))
	out := New(false).FormatDay(march15.Prev(), page)

	assert.NotContains(t, out, "Running")
	assert.NotContains(t, out, "(today)")
	assert.Contains(t, out, "ahead")
}

func TestFormatUnresolvedPages(t *testing.T) {
	f := New(false)
	b := builder()
	boom := errors.New("boom")

	out := f.FormatDay(march15, b.DayPage(march15, resolved(core.DayReport{}, boom)))
	assert.Contains(t, out, view.MsgDayFailed)
	assert.NotContains(t, out, "Total")
	assert.NotContains(t, out, "boom", "failed pages never show the underlying error")

	out = f.FormatCalendar(march, b.CalendarPage(march, resolved(core.CalendarReport{}, boom)))
	assert.Contains(t, out, view.MsgCalendarFailed)

	out = f.FormatProjects(march, b.ProjectsPage(march, resolved(core.ProjectsReport{}, boom)))
	assert.Contains(t, out, view.MsgProjectsFailed)

	out = f.FormatProjects(march, b.ProjectsPage(march, view.State[core.ProjectsReport]{}))
	assert.Contains(t, out, view.MsgLoading)
}

func TestFormatCalendar(t *testing.T) {
	day, hours := 15, 2.5
	page := builder().CalendarPage(march, resolved(core.CalendarReport{
		Days:       []core.DayHours{{Day: &day, Hours: &hours}, {Day: nil}},
		HourlyRate: 40,
	}, nil))

	out := New(false).FormatCalendar(march, page)

	assert.True(t, strings.HasPrefix(out, "March 2024\n"))
	for _, want := range []string{"Mon", "Sun", "31", "2:30", "Total", "$100"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatProjects(t *testing.T) {
	b := builder()
	page := b.ProjectsPage(march, resolved(core.ProjectsReport{
		Projects: []core.ProjectTime{
			{Source: "clockify", ProjectTitle: "Website", Hours: 2.5},
			{Source: "clockify", ProjectTitle: "Idle", Hours: 0},
		},
		TotalHours:      2.5,
		ProjectedHours:  40,
		ProjectedIncome: 1600.9,
		HourlyRate:      40,
	}, nil))

	out := New(false).FormatProjects(march, page)

	for _, want := range []string{"Website", "clockify", "2:30", "$100", "Projected", "40:00", "$1600"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Idle")

	empty := New(false).FormatProjects(march, b.ProjectsPage(march, resolved(core.ProjectsReport{}, nil)))
	assert.Contains(t, empty, view.MsgNoData)
}

func TestPaceStyle(t *testing.T) {
	assert.Equal(t, StyleRed, PaceStyle(core.PaceBehind))
	assert.Equal(t, StyleGreen, PaceStyle(core.PaceAhead))
	assert.Equal(t, StyleYellow, PaceStyle(core.PaceNeutral))
	assert.True(t, New(true).Color())
	assert.False(t, New(false).Color())
}
