package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myspace/internal/core"
)

var errUpstream = errors.New("upstream down")

func fixedBuilder(now time.Time) Builder {
	b := NewBuilder(core.Dollar, time.UTC)
	b.Now = func() time.Time { return now }
	return b
}

func TestStateTransitions(t *testing.T) {
	var s State[int]
	assert.Equal(t, Loading, s.Status())

	assert.True(t, s.Resolve(7, nil))
	assert.Equal(t, Ready, s.Status())
	assert.Equal(t, 7, s.Data())

	// Terminal: a later failure does not overwrite Ready.
	assert.False(t, s.Resolve(0, errUpstream))
	assert.Equal(t, Ready, s.Status())
	assert.NoError(t, s.Err())

	var f State[int]
	assert.True(t, f.Resolve(0, errUpstream))
	assert.Equal(t, Failed, f.Status())
	assert.False(t, f.Resolve(9, nil))
	assert.ErrorIs(t, f.Err(), errUpstream)
	assert.Equal(t, 0, f.Data())
}

func TestLoadFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	s := Load(context.Background(), func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", errUpstream
	})
	assert.Equal(t, Failed, s.Status())
	assert.Equal(t, int32(1), calls.Load())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
}

func TestDayProjection(t *testing.T) {
	d := core.Date{Year: 2024, Month: time.March, Day: 15}
	b := fixedBuilder(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))

	v := b.Day(d, core.DayReport{
		Hours:        3.25,
		RunningHours: 0.5,
		TodayPercent: 40.6,
		MonthPercent: 55,
		MonthHours:   80.5,
		Pace:         -9.5,
		DailyGoal:    8,
	})

	assert.Equal(t, "3:15", v.TodayHours)
	assert.Equal(t, "0:30", v.RunningHours)
	assert.Equal(t, "3:45", v.Total)
	assert.True(t, v.Running)
	assert.True(t, v.IsToday)
	assert.Equal(t, "40.6%", v.TodayPercent)
	assert.Equal(t, "55%", v.MonthPercent)
	assert.Equal(t, "80:30", v.MonthHours)
	assert.Equal(t, "9:30", v.Pace)
	assert.Equal(t, core.PaceBehind, v.PaceClass)
	assert.Equal(t, "/2024/3/14", v.Nav.PrevLink)
	assert.Equal(t, "/2024/3/16", v.Nav.NextLink)
	assert.Equal(t, "/2024/3/projects", v.Nav.MonthLink)

	other := b.Day(d.Next(), core.DayReport{Pace: 1})
	assert.False(t, other.IsToday)
	assert.False(t, other.Running)
	assert.Equal(t, core.PaceAhead, other.PaceClass)
}

func TestPagesUsePageMessages(t *testing.T) {
	b := fixedBuilder(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	d := core.Date{Year: 2024, Month: time.March, Day: 15}
	p := d.Period()

	var day State[core.DayReport]
	assert.True(t, b.DayPage(d, day).IsLoading())
	assert.Equal(t, MsgLoading, b.DayPage(d, day).Message)

	day.Resolve(core.DayReport{}, errUpstream)
	page := b.DayPage(d, day)
	assert.True(t, page.IsFailed())
	assert.Equal(t, "Failed to fetch data", page.Message)
	assert.Empty(t, page.View.TodayHours)

	var cal State[core.CalendarReport]
	cal.Resolve(core.CalendarReport{}, errUpstream)
	assert.Equal(t, "Failed to fetch calendar data", b.CalendarPage(p, cal).Message)

	var prj State[core.ProjectsReport]
	prj.Resolve(core.ProjectsReport{}, errUpstream)
	assert.Equal(t, "Failed to fetch projects data", b.ProjectsPage(p, prj).Message)
}

func TestCalendarProjection(t *testing.T) {
	b := fixedBuilder(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC))
	p := core.Period{Year: 2024, Month: time.March}
	day, h := 15, 2.5
	zeroDay, zero := 16, 0.0

	v := b.Calendar(p, core.CalendarReport{
		Days:       []core.DayHours{{}, {Day: &day, Hours: &h}, {Day: &zeroDay, Hours: &zero}},
		HourlyRate: 40,
	})

	assert.Equal(t, core.Weekdays, v.Weekdays)
	assert.Equal(t, "March 2024", v.Nav.Caption)
	assert.Equal(t, "/2024/3/projects", v.Nav.ThisLink)
	assert.Equal(t, "/2024/2/calendar", v.Nav.PrevLink)
	assert.Equal(t, "2:30", v.TotalHours)
	assert.Equal(t, "$100", v.TotalMoney)

	// March 2024 starts on a Friday: four padding cells lead.
	require.Len(t, v.Weeks, 5)
	assert.Zero(t, v.Weeks[0][3].Day)
	assert.Equal(t, 1, v.Weeks[0][4].Day)

	var found, today int
	for _, w := range v.Weeks {
		for _, c := range w {
			if c.IsToday {
				today++
			}
			if c.HasHours {
				found++
				assert.Equal(t, 15, c.Day)
				assert.Equal(t, "2:30", c.Hours)
				assert.Equal(t, "$100", c.Money)
			}
			if c.Day == 16 {
				assert.False(t, c.HasHours, "zero hours are not shown")
			}
		}
	}
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, today)
}

func TestProjectsProjection(t *testing.T) {
	b := fixedBuilder(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	p := core.Period{Year: 2024, Month: time.March}

	v := b.Projects(p, core.ProjectsReport{
		Projects: []core.ProjectTime{
			{Source: "clockify", ProjectTitle: "Website", Hours: 10.5},
			{Source: "everhour", ProjectTitle: "Idle", Hours: 0},
			{Source: "clockify", ProjectTitle: "Docs", Seconds: 5400},
		},
		TotalHours:      12,
		ProjectedIncome: 4321.99,
		ProjectedHours:  86.25,
		HourlyRate:      50,
	})

	assert.False(t, v.Empty)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, ProjectRow{Source: "clockify", Title: "Website", Hours: "10:30", Money: "$525"}, v.Rows[0])
	assert.Equal(t, ProjectRow{Source: "clockify", Title: "Docs", Hours: "1:30", Money: "$75"}, v.Rows[1])
	assert.Equal(t, "12:00", v.TotalHours)
	assert.Equal(t, "$600", v.TotalMoney)
	assert.Equal(t, "86:15", v.ProjectedHours)
	assert.Equal(t, "$4321", v.ProjectedIncome)
	assert.Equal(t, "/2024/3/calendar", v.Nav.ThisLink)

	empty := b.Projects(p, core.ProjectsReport{Projects: []core.ProjectTime{{ProjectTitle: "x"}}})
	assert.True(t, empty.Empty)
	assert.Empty(t, empty.Rows)
}

func TestBuilderCurrency(t *testing.T) {
	b := NewBuilder("€", time.UTC)
	b.Now = func() time.Time { return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC) }
	v := b.Projects(core.Period{Year: 2024, Month: time.March}, core.ProjectsReport{TotalHours: 2, HourlyRate: 30.5})
	assert.Equal(t, "€61", v.TotalMoney)

	assert.Equal(t, core.Dollar, NewBuilder("", nil).Currency)
}

func TestReloaderFiresOnce(t *testing.T) {
	fired := make(chan struct{}, 4)
	r := NewReloader(10*time.Millisecond, func() { fired <- struct{}{} })
	defer r.Stop()

	require.True(t, r.Arm())
	assert.True(t, r.Pending())

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("reload did not fire")
	}

	select {
	case <-fired:
		t.Fatal("reload fired twice without re-arm")
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, r.Pending())
}

func TestReloaderStopCancels(t *testing.T) {
	var calls atomic.Int32
	r := NewReloader(20*time.Millisecond, func() { calls.Add(1) })

	require.True(t, r.Arm())
	r.Stop()
	r.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, r.Arm(), "stopped reloader cannot be re-armed")
	assert.False(t, r.Pending())
}

func TestReloaderRearmReplacesPending(t *testing.T) {
	var calls atomic.Int32
	r := NewReloader(30*time.Millisecond, func() { calls.Add(1) })
	defer r.Stop()

	r.Arm()
	time.Sleep(10 * time.Millisecond)
	r.Arm()
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
}
