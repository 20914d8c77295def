// Package render writes month grids as a text table, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/username/month-grid/internal/config"
	"github.com/username/month-grid/internal/monthgrid"
	"github.com/username/month-grid/pkg/dateutil"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Report is the serialized form of a calculator's queries and grid
type Report struct {
	Reference           string `json:"reference" yaml:"reference"`
	Day                 int    `json:"day" yaml:"day"`
	WeekDay             int    `json:"week_day" yaml:"week_day"`
	FirstWeekDay        int    `json:"first_week_day" yaml:"first_week_day"`
	FirstWeek           int    `json:"first_week" yaml:"first_week"`
	DaysInMonth         int    `json:"days_in_month" yaml:"days_in_month"`
	DaysInPreviousMonth int    `json:"days_in_previous_month" yaml:"days_in_previous_month"`
	Weeks               []Week `json:"weeks,omitempty" yaml:"weeks,omitempty"`
}

// Week is one serialized grid row
type Week struct {
	Week int   `json:"week" yaml:"week"`
	Days []Day `json:"days" yaml:"days"`
}

// Day is one serialized grid cell
type Day struct {
	Date      string `json:"date" yaml:"date"`
	Day       int    `json:"day" yaml:"day"`
	Highlight bool   `json:"highlight" yaml:"highlight"`
}

// NewReport collects the scalar queries of c and, when withGrid is set, its grid
func NewReport(c *monthgrid.Calculator, withGrid bool) Report {
	report := Report{
		Reference:           dateutil.FormatDate(c.Reference()),
		Day:                 c.Day(),
		WeekDay:             c.WeekDay(),
		FirstWeekDay:        c.FirstWeekDay(),
		FirstWeek:           c.FirstWeek(),
		DaysInMonth:         c.NumberOfDaysInThisMonth(),
		DaysInPreviousMonth: c.NumberOfDaysInPreviousMonth(),
	}
	if withGrid {
		report.Weeks = weeksOf(c.Calendar())
	}
	return report
}

func weeksOf(grid monthgrid.Grid) []Week {
	weeks := make([]Week, 0, len(grid.Weeks))
	for _, w := range grid.Weeks {
		days := make([]Day, 0, len(w.Days))
		for _, cell := range w.Days {
			days = append(days, Day{
				Date:      dateutil.FormatDate(cell.Date),
				Day:       cell.Day,
				Highlight: cell.Highlight,
			})
		}
		weeks = append(weeks, Week{Week: w.Number, Days: days})
	}
	return weeks
}

// Write renders report to w in the given format
func Write(w io.Writer, format string, report Report) error {
	switch format {
	case config.FormatText:
		return writeText(w, report)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeText(w io.Writer, report Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Reference:            %s\n", report.Reference)
	fmt.Fprintf(&b, "Day:                  %d\n", report.Day)
	fmt.Fprintf(&b, "Weekday:              %d\n", report.WeekDay)
	fmt.Fprintf(&b, "First weekday:        %d\n", report.FirstWeekDay)
	fmt.Fprintf(&b, "First week:           %d\n", report.FirstWeek)
	fmt.Fprintf(&b, "Days in month:        %d\n", report.DaysInMonth)
	fmt.Fprintf(&b, "Days in prev. month:  %d\n", report.DaysInPreviousMonth)

	if len(report.Weeks) > 0 {
		b.WriteString("\nWeek |")
		for _, name := range weekdayNames {
			fmt.Fprintf(&b, " %-3s", name)
		}
		b.WriteString("\n-----+")
		b.WriteString(strings.Repeat("-", 4*len(weekdayNames)))
		b.WriteString("\n")

		for _, week := range report.Weeks {
			fmt.Fprintf(&b, "%4d |", week.Week)
			for _, day := range week.Days {
				mark := " "
				if day.Highlight {
					mark = "*"
				}
				fmt.Fprintf(&b, " %2d%s", day.Day, mark)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n'*' = highlighted week\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
