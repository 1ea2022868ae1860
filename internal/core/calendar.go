package core

import "time"

// Weekdays is the Monday-first header of the calendar grid.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type (
	// CalendarDay is one grid cell. Day is zero for padding cells, which
	// carry no hours and no link.
	CalendarDay struct {
		Day     int
		Hours   *float64
		Link    string
		IsToday bool
	}

	// Week is one Monday-first row.
	Week [7]CalendarDay

	// Calendar is a month laid out in week rows.
	Calendar struct {
		Period Period
		Weeks  []Week
	}
)

// IsPadding reports whether the cell lies outside the month.
func (c CalendarDay) IsPadding() bool {
	return c.Day == 0
}

// HasHours reports whether the cell has a positive hours total.
func (c CalendarDay) HasHours() bool {
	return c.Hours != nil && *c.Hours > 0
}

// BuildCalendar lays out p as Monday-first week rows. hours maps day of
// month to tracked hours; days absent from the map have no hours. The cell
// equal to today, if any, is flagged.
func BuildCalendar(p Period, hours map[int]float64, today Date) Calendar {
	first := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	// Monday=0 ... Sunday=6
	offset := (int(first.Weekday()) + 6) % 7
	days := p.Days()

	total := offset + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cal := Calendar{Period: p, Weeks: make([]Week, total/7)}
	for i := offset; i < offset+days; i++ {
		d := Date{Year: p.Year, Month: p.Month, Day: i - offset + 1}
		cell := CalendarDay{
			Day:     d.Day,
			Link:    d.Link(),
			IsToday: d == today,
		}
		if h, ok := hours[d.Day]; ok {
			h := h
			cell.Hours = &h
		}
		cal.Weeks[i/7][i%7] = cell
	}
	return cal
}

// Cells flattens the grid row by row.
func (c Calendar) Cells() []CalendarDay {
	out := make([]CalendarDay, 0, len(c.Weeks)*7)
	for _, w := range c.Weeks {
		out = append(out, w[:]...)
	}
	return out
}
