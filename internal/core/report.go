package core

import "math"

type (
	// DayReport is the backend body of /{year}/{month}/{day}.
	DayReport struct {
		Date         string  `json:"date,omitempty"`
		Hours        float64 `json:"hours"`
		RunningHours float64 `json:"running_hours"`
		TodayPercent float64 `json:"today_percent"`
		MonthPercent float64 `json:"month_percent"`
		MonthHours   float64 `json:"month_hours"`
		Pace         float64 `json:"pace"`
		DailyGoal    float64 `json:"daily_goal"`
	}

	// DayHours is one entry of the calendar payload. Padding entries carry
	// a null day and are ignored.
	DayHours struct {
		Day   *int     `json:"day"`
		Hours *float64 `json:"hours"`
	}

	// CalendarReport is the backend body of /{year}/{month}/calendar.
	CalendarReport struct {
		Year       int        `json:"year"`
		Month      int        `json:"month"`
		Days       []DayHours `json:"days"`
		Hours      float64    `json:"hours"`
		DailyGoal  float64    `json:"daily_goal"`
		HourlyRate float64    `json:"hourly_rate"`
	}

	// ProjectTime is the time tracked on one project during a month.
	ProjectTime struct {
		Source       string  `json:"source"`
		ProjectID    string  `json:"project_id"`
		ProjectTitle string  `json:"project_title"`
		Seconds      int     `json:"seconds"`
		Hours        float64 `json:"hours"`
	}

	// ProjectsReport is the backend body of /{year}/{month}/projects.
	ProjectsReport struct {
		Year            int           `json:"year"`
		Month           int           `json:"month"`
		Projects        []ProjectTime `json:"projects"`
		TotalHours      float64       `json:"total_hours"`
		ProjectedIncome float64       `json:"projected_income"`
		ProjectedHours  float64       `json:"projected_hours"`
		HourlyRate      float64       `json:"hourly_rate"`
	}
)

// TotalHours is tracked plus running hours.
func (r DayReport) TotalHours() float64 {
	return r.Hours + r.RunningHours
}

// HoursByDay indexes the calendar payload by day of month. Null days and
// null hours are skipped.
func (r CalendarReport) HoursByDay() map[int]float64 {
	out := make(map[int]float64, len(r.Days))
	for _, d := range r.Days {
		if d.Day == nil || d.Hours == nil {
			continue
		}
		out[*d.Day] += *d.Hours
	}
	return out
}

// HoursOrDerived returns Hours, falling back to Seconds rounded to two
// decimals when the backend omitted hours.
func (p ProjectTime) HoursOrDerived() float64 {
	if p.Hours != 0 || p.Seconds == 0 {
		return p.Hours
	}
	return math.Round(float64(p.Seconds)/3600*100) / 100
}
