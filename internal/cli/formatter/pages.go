package formatter

import (
	"strconv"
	"strings"

	"myspace/internal/core"
	"myspace/internal/view"
)

// FormatDay renders the day page: today, month and pace lines plus the
// combined total.
func (f Formatter) FormatDay(d core.Date, page view.Page[view.DayView]) string {
	var b strings.Builder
	nav := core.DayNav(d)
	title := nav.Month + " " + nav.Day + ", " + nav.Year
	if page.IsReady() && page.View.IsToday {
		title += " " + f.render(StyleDim, "(today)")
	}
	b.WriteString(f.render(StyleHeader, title) + "\n\n")

	if body, ok := f.unresolved(page.Status, page.Message); !ok {
		b.WriteString(body)
		return b.String()
	}

	v := page.View
	rows := [][]string{
		{"Today", v.TodayHours, v.TodayPercent},
	}
	if v.Running {
		rows = append(rows, []string{"Running", f.render(StyleGreen, v.RunningHours), f.render(StyleGreen, "●")})
	}
	rows = append(rows,
		[]string{"Month", v.MonthHours, v.MonthPercent},
		[]string{"Pace", f.render(PaceStyle(v.PaceClass), v.Pace), paceLabel(v.PaceClass)},
	)
	footer := [][]string{{f.render(StyleBold, "Total"), f.render(StyleBold, v.Total), ""}}

	b.WriteString(f.RenderTable([]string{"", "Hours", "Progress"}, rows, footer))
	b.WriteString("\n" + f.render(StyleDim, "← "+d.Prev().String()+"   "+d.Next().String()+" →") + "\n")
	return b.String()
}

// FormatCalendar renders the Monday-first month grid. Each week takes two
// lines: day numbers, then tracked hours.
func (f Formatter) FormatCalendar(p core.Period, page view.Page[view.CalendarView]) string {
	var b strings.Builder
	b.WriteString(f.render(StyleHeader, p.Caption()) + "\n\n")

	if body, ok := f.unresolved(page.Status, page.Message); !ok {
		b.WriteString(body)
		return b.String()
	}

	v := page.View
	var rows [][]string
	for _, week := range v.Weeks {
		days := make([]string, len(week))
		hours := make([]string, len(week))
		for i, cell := range week {
			if cell.Day == 0 {
				continue
			}
			days[i] = strconv.Itoa(cell.Day)
			if cell.IsToday {
				days[i] = f.render(StyleToday, days[i])
			} else {
				days[i] = f.render(StyleDim, days[i])
			}
			if cell.HasHours {
				hours[i] = f.render(StyleGreen, cell.Hours)
			}
		}
		rows = append(rows, days, hours)
	}
	footer := [][]string{{
		f.render(StyleBold, "Total"),
		f.render(StyleBold, v.TotalHours),
		f.render(StyleBold, v.TotalMoney),
	}}

	b.WriteString(f.RenderTable(v.Weekdays[:], rows, footer))
	return b.String()
}

// FormatProjects renders one row per project followed by the totals and
// projected rows.
func (f Formatter) FormatProjects(p core.Period, page view.Page[view.ProjectsView]) string {
	var b strings.Builder
	b.WriteString(f.render(StyleHeader, p.Caption()) + "\n\n")

	if body, ok := f.unresolved(page.Status, page.Message); !ok {
		b.WriteString(body)
		return b.String()
	}

	v := page.View
	if v.Empty {
		b.WriteString(f.render(StyleDim, view.MsgNoData) + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []string{r.Title, f.render(StyleDim, r.Source), r.Hours, r.Money})
	}
	footer := [][]string{
		{f.render(StyleBold, "Total"), "", f.render(StyleBold, v.TotalHours), f.render(StyleBold, v.TotalMoney)},
		{f.render(StyleDim, "Projected"), "", f.render(StyleDim, v.ProjectedHours), f.render(StyleDim, v.ProjectedIncome)},
	}

	b.WriteString(f.RenderTable([]string{"Project", "Source", "Hours", "Earned"}, rows, footer))
	return b.String()
}

// unresolved renders the Loading and Failed states. ok is true when the
// page is Ready and the caller should render its view.
func (f Formatter) unresolved(status view.Status, message string) (string, bool) {
	switch status {
	case view.Loading:
		return f.render(StyleDim, message) + "\n", false
	case view.Failed:
		return f.render(StyleRed, message) + "\n", false
	default:
		return "", true
	}
}

func paceLabel(c core.PaceClass) string {
	switch c {
	case core.PaceBehind:
		return "behind"
	case core.PaceAhead:
		return "ahead"
	default:
		return "on track"
	}
}
