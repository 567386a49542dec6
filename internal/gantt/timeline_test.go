package gantt

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func december() Window {
	return NewWindow(date(2025, time.December, 1), 31)
}

func TestScenarioD_ClampsStartBeforeWindow(t *testing.T) {
	w := december()
	start := date(2025, time.November, 25)
	end := date(2025, time.December, 3)

	assert.Equal(t, 0, w.DayPosition(start))
	assert.Equal(t, 2, w.DayPosition(end))
	assert.Equal(t, 3, w.BarWidthInDays(start, end))
}

func TestDayPosition_StaysInsideWindow(t *testing.T) {
	w := december()
	inputs := []time.Time{
		date(1970, time.January, 1),
		date(2025, time.November, 30),
		date(2025, time.December, 1),
		date(2025, time.December, 1).Add(23 * time.Hour),
		date(2025, time.December, 31),
		date(2026, time.January, 1),
		date(2199, time.June, 15),
	}
	for _, in := range inputs {
		got := w.DayPosition(in)
		assert.GreaterOrEqual(t, got, 0, in)
		assert.LessOrEqual(t, got, w.Days-1, in)
	}
	assert.Equal(t, 0, w.DayPosition(date(2025, time.December, 1).Add(23*time.Hour)))
	assert.Equal(t, 30, w.DayPosition(date(2025, time.December, 31)))
	assert.Equal(t, 30, w.DayPosition(date(2026, time.January, 15)))
}

func TestDayPosition_FloorsPartialDaysBeforeStart(t *testing.T) {
	w := december()
	assert.Equal(t, 0, w.DayPosition(date(2025, time.December, 1).Add(-12*time.Hour)))
	w2 := NewWindow(date(2025, time.December, 1), 31)
	assert.Equal(t, 1, w2.DayPosition(date(2025, time.December, 2).Add(12*time.Hour)))
}

func TestDayPosition_CountsCalendarDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local := func(m time.Month, d int) time.Time { return time.Date(2026, m, d, 0, 0, 0, 0, ny) }

	// Clocks spring forward on 2026-03-08.
	march := NewWindow(local(time.March, 1), 31)
	assert.Equal(t, 7, march.DayPosition(local(time.March, 8)))
	assert.Equal(t, 9, march.DayPosition(local(time.March, 10)))
	assert.Equal(t, 30, march.DayPosition(local(time.March, 31)))
	assert.Equal(t, 3, march.BarWidthInDays(local(time.March, 7), local(time.March, 9)))

	// And fall back on 2026-11-01.
	nov := NewWindow(local(time.October, 31), 30)
	assert.Equal(t, 1, nov.DayPosition(local(time.November, 1)))
	assert.Equal(t, 2, nov.DayPosition(local(time.November, 2)))
	assert.Equal(t, 2, nov.DayPosition(local(time.November, 2).Add(23*time.Hour+30*time.Minute)))
}

func TestForest_BarsInDSTZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	f, err := Build([]Node{{ID: "1", Name: "Launch", Start: "2026-03-10", End: "2026-03-12", Progress: 40}}, ny)
	require.NoError(t, err)

	rows := f.Rows(NewWindow(time.Date(2026, time.March, 1, 0, 0, 0, 0, ny), 31), 20)
	require.Len(t, rows, 1)
	assert.Equal(t, 9, rows[0].Bar.StartDay)
	assert.Equal(t, 3, rows[0].Bar.WidthDays)
}

func TestBarWidthInDays_AtLeastOne(t *testing.T) {
	w := december()
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", date(2025, time.December, 5), date(2025, time.December, 5), 1},
		{"inverted", date(2025, time.December, 20), date(2025, time.December, 3), 1},
		{"both before window", date(2025, time.October, 1), date(2025, time.October, 9), 1},
		{"both after window", date(2026, time.February, 1), date(2026, time.March, 1), 1},
		{"full window", date(2025, time.December, 1), date(2025, time.December, 31), 31},
		{"spills past end", date(2025, time.December, 5), date(2026, time.January, 15), 27},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := w.BarWidthInDays(tc.start, tc.end)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 1)
		})
	}
}

func TestBar_Percentages(t *testing.T) {
	w := december()
	b := w.Bar(Task{
		ID:       "1",
		Start:    date(2025, time.December, 11),
		End:      date(2025, time.December, 20),
		Progress: 70,
	})

	assert.Equal(t, 10, b.StartDay)
	assert.Equal(t, 10, b.WidthDays)
	assert.InDelta(t, 10.0/31*100, b.LeftPct, 1e-9)
	assert.InDelta(t, 10.0/31*100, b.WidthPct, 1e-9)
	assert.Equal(t, 70, b.ProgressPct)
	assert.Equal(t, "70%", b.Label)
}

func TestCells(t *testing.T) {
	cells := december().Cells()
	assert.Len(t, cells, 31)
	assert.Equal(t, 1, cells[0].Day)
	assert.Equal(t, "Mon", cells[0].Weekday)
	assert.Equal(t, 31, cells[30].Day)
}
