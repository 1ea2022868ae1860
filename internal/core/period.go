package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

type (
	// Period addresses the month-level pages.
	Period struct {
		Year  int
		Month time.Month
	}

	// Date addresses a single day page.
	Date struct {
		Year  int
		Month time.Month
		Day   int
	}

	// NavigationLinks drives the month pages' caption and arrows.
	// ThisLink points at the same period in the other month mode.
	NavigationLinks struct {
		Caption      string
		Mode         Mode
		PrevLink     string
		ThisLink     string
		NextLink     string
		CalendarLink string
		ProjectsLink string
	}

	// DayNavigation drives the day page header.
	DayNavigation struct {
		Month     string
		Day       string
		Year      string
		MonthLink string
		PrevLink  string
		NextLink  string
	}

	// Mode selects which month page a link targets.
	Mode string
)

const (
	ModeCalendar Mode = "calendar"
	ModeProjects Mode = "projects"
)

// Other returns the sibling month mode.
func (m Mode) Other() Mode {
	if m == ModeCalendar {
		return ModeProjects
	}
	return ModeCalendar
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Validate checks the year and month ranges.
func (p Period) Validate() error {
	if p.Year < minYear || p.Year > maxYear {
		return ErrInvalidYear
	}
	if p.Month < time.January || p.Month > time.December {
		return ErrInvalidMonth
	}
	return nil
}

// Prev returns the previous month, rolling back to December of the prior year.
func (p Period) Prev() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next returns the following month, rolling over to January of the next year.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Caption is the human readable label, e.g. "March 2024".
func (p Period) Caption() string {
	return p.Month.String() + " " + strconv.Itoa(p.Year)
}

// Link is the path prefix of the period's pages, e.g. "/2024/3".
func (p Period) Link() string {
	return "/" + strconv.Itoa(p.Year) + "/" + strconv.Itoa(int(p.Month))
}

// ModeLink is the path of one of the period's pages, e.g. "/2024/3/calendar".
func (p Period) ModeLink(m Mode) string {
	return p.Link() + "/" + string(m)
}

// Days returns the number of days in the month.
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String implements fmt.Stringer as "2024-03".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// NavLinks derives the caption and links for a month page shown in mode m.
func NavLinks(p Period, m Mode) NavigationLinks {
	return NavigationLinks{
		Caption:      p.Caption(),
		Mode:         m,
		PrevLink:     p.Prev().ModeLink(m),
		ThisLink:     p.ModeLink(m.Other()),
		NextLink:     p.Next().ModeLink(m),
		CalendarLink: p.ModeLink(ModeCalendar),
		ProjectsLink: p.ModeLink(ModeProjects),
	}
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc != nil {
		now = now.In(loc)
	}
	return DateOf(now)
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Validate checks that the date exists on the calendar.
func (d Date) Validate() error {
	if err := d.Period().Validate(); err != nil {
		return err
	}
	if d.Day < 1 || d.Day > d.Period().Days() {
		return ErrInvalidDay
	}
	return nil
}

// Period returns the month containing d.
func (d Date) Period() Period {
	return Period{Year: d.Year, Month: d.Month}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Prev returns the previous calendar day.
func (d Date) Prev() Date {
	return DateOf(d.Time().AddDate(0, 0, -1))
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

// Link is the day page path, e.g. "/2024/3/15".
func (d Date) Link() string {
	return d.Period().Link() + "/" + strconv.Itoa(d.Day)
}

// String implements fmt.Stringer as "2024-03-15".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DayNav derives the day page header fields.
func DayNav(d Date) DayNavigation {
	return DayNavigation{
		Month:     d.Month.String(),
		Day:       strconv.Itoa(d.Day),
		Year:      strconv.Itoa(d.Year),
		MonthLink: d.Period().ModeLink(ModeProjects),
		PrevLink:  d.Prev().Link(),
		NextLink:  d.Next().Link(),
	}
}

// ParsePeriod parses year and month route parameters.
func ParsePeriod(year, month string) (Period, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Period{}, ErrInvalidYear
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, ErrInvalidMonth
	}
	p := Period{Year: y, Month: time.Month(m)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// ParseDate parses year, month and day route parameters.
func ParseDate(year, month, day string) (Date, error) {
	p, err := ParsePeriod(year, month)
	if err != nil {
		return Date{}, err
	}
	dd, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return Date{}, ErrInvalidDay
	}
	d := Date{Year: p.Year, Month: p.Month, Day: dd}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}
