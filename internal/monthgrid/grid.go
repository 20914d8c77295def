package monthgrid

import "time"

// Cell is a single day in the grid
type Cell struct {
	Date      time.Time
	Day       int
	Highlight bool
}

// Week is one row of the grid, keyed by ISO week number
type Week struct {
	Number int
	Days   []Cell
}

// Grid maps ISO week numbers to their days, both in chronological order
type Grid struct {
	Weeks []Week
}

func (g *Grid) add(weekNumber int, cell Cell) {
	if n := len(g.Weeks); n == 0 || g.Weeks[n-1].Number != weekNumber {
		g.Weeks = append(g.Weeks, Week{Number: weekNumber})
	}
	last := &g.Weeks[len(g.Weeks)-1]
	last.Days = append(last.Days, cell)
}

// Week returns the row with the given ISO week number
func (g Grid) Week(number int) (Week, bool) {
	for _, w := range g.Weeks {
		if w.Number == number {
			return w, true
		}
	}
	return Week{}, false
}

// Highlighted reports the highlight flag of a day in a week.
// The second result is false when the grid has no such cell.
func (g Grid) Highlighted(weekNumber, day int) (highlight bool, ok bool) {
	w, ok := g.Week(weekNumber)
	if !ok {
		return false, false
	}
	for _, cell := range w.Days {
		if cell.Day == day {
			return cell.Highlight, true
		}
	}
	return false, false
}

// Start returns the first date in the grid (always a Monday)
func (g Grid) Start() time.Time {
	if len(g.Weeks) == 0 {
		return time.Time{}
	}
	return g.Weeks[0].Days[0].Date
}

// End returns the last date in the grid (always a Sunday)
func (g Grid) End() time.Time {
	if len(g.Weeks) == 0 {
		return time.Time{}
	}
	last := g.Weeks[len(g.Weeks)-1]
	return last.Days[len(last.Days)-1].Date
}

// Len returns the number of days in the grid
func (g Grid) Len() int {
	n := 0
	for _, w := range g.Weeks {
		n += len(w.Days)
	}
	return n
}

// DayNumbers returns the day-of-month keys of the week in order
func (w Week) DayNumbers() []int {
	days := make([]int, len(w.Days))
	for i, cell := range w.Days {
		days[i] = cell.Day
	}
	return days
}
