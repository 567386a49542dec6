package gantt

import (
	"strconv"
	"time"
)

const day = 24 * time.Hour

// Window is the fixed date range the chart displays.
type Window struct {
	Start time.Time
	Days  int
}

func NewWindow(start time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	return Window{Start: start, Days: days}
}

// DayPosition is the number of calendar days from the window start to t,
// clamped into [0, Days-1]. Days are counted in the window's location, so a
// 23 or 25 hour day across a DST change still counts as one.
func (w Window) DayPosition(t time.Time) int {
	loc := w.Start.Location()
	diff := int(calendarDay(t, loc).Sub(calendarDay(w.Start, loc)) / day)
	return max(0, min(diff, w.Days-1))
}

// calendarDay maps t to UTC midnight of its date in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BarWidthInDays is never below one day, even for inverted ranges.
func (w Window) BarWidthInDays(start, end time.Time) int {
	return max(1, w.DayPosition(end)-w.DayPosition(start)+1)
}

// Bar is the horizontal placement of one task, in percent of the window width.
type Bar struct {
	LeftPct     float64 `json:"leftPct"`
	WidthPct    float64 `json:"widthPct"`
	StartDay    int     `json:"startDay"`
	WidthDays   int     `json:"widthDays"`
	ProgressPct int     `json:"progressPct"`
	Label       string  `json:"label"`
}

func (w Window) Bar(t Task) Bar {
	pos := w.DayPosition(t.Start)
	width := w.BarWidthInDays(t.Start, t.End)
	return Bar{
		LeftPct:     float64(pos) / float64(w.Days) * 100,
		WidthPct:    float64(width) / float64(w.Days) * 100,
		StartDay:    pos,
		WidthDays:   width,
		ProgressPct: t.Progress,
		Label:       strconv.Itoa(t.Progress) + "%",
	}
}

// DayCell is one column of the header grid.
type DayCell struct {
	Date    time.Time
	Day     int
	Weekday string
}

// Cells lists every day in the window.
func (w Window) Cells() []DayCell {
	out := make([]DayCell, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		d := w.Start.AddDate(0, 0, i)
		out = append(out, DayCell{Date: d, Day: d.Day(), Weekday: d.Format("Mon")})
	}
	return out
}
