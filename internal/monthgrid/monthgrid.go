// Package monthgrid lays out a calendar month as rows of ISO weeks.
package monthgrid

import (
	"time"

	"github.com/username/month-grid/pkg/dateutil"
)

// MonthGrid describes the queries available for a reference date
type MonthGrid interface {
	// Day returns the day of month of the reference date (1-31)
	Day() int

	// WeekDay returns the weekday of the reference date (1-7, 1 = Monday)
	WeekDay() int

	// FirstWeekDay returns the weekday of the first day of the month (1-7, 1 = Monday)
	FirstWeekDay() int

	// FirstWeek returns the ISO week of the first day of the month
	FirstWeek() int

	// NumberOfDaysInThisMonth returns the length of the reference month
	NumberOfDaysInThisMonth() int

	// NumberOfDaysInPreviousMonth returns the length of the month before the reference month
	NumberOfDaysInPreviousMonth() int

	// Calendar returns the week-by-week grid of the reference month
	Calendar() Grid
}

// Calculator implements MonthGrid for a single reference date.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	reference time.Time
}

var _ MonthGrid = (*Calculator)(nil)

// New creates a Calculator for the given reference date.
// Only the calendar date of ref in its own location is used.
func New(ref time.Time) *Calculator {
	return &Calculator{reference: ref}
}

// Reference returns the reference date
func (c *Calculator) Reference() time.Time {
	return c.reference
}

// Day returns the day of month (18th March => 18)
func (c *Calculator) Day() int {
	return c.reference.Day()
}

// WeekDay returns the weekday (1-7, 1 = Monday)
func (c *Calculator) WeekDay() int {
	return dateutil.ISOWeekday(c.reference)
}

// FirstWeekDay returns the weekday of the first day of this month (1-7, 1 = Monday)
func (c *Calculator) FirstWeekDay() int {
	return dateutil.ISOWeekday(c.firstDay())
}

// FirstWeek returns the ISO week of the first day of this month
// (18th March 2024 => 9 because March starts on week 9)
func (c *Calculator) FirstWeek() int {
	return week(c.firstDay())
}

// NumberOfDaysInThisMonth returns the number of days in this month
func (c *Calculator) NumberOfDaysInThisMonth() int {
	return dateutil.DaysInMonth(c.day())
}

// NumberOfDaysInPreviousMonth returns the number of days in the previous month
func (c *Calculator) NumberOfDaysInPreviousMonth() int {
	return dateutil.DaysInMonth(c.firstDay().AddDate(0, 0, -1))
}

// Calendar builds the grid of whole weeks covering this month.
//
// A day is highlighted only when the reference date is not in the month's first
// week and the day belongs to the ISO week exactly seven days before the reference.
func (c *Calculator) Calendar() Grid {
	highlight := week(c.day()) != c.FirstWeek()

	start := gridStart(c.firstDay())
	end := gridEnd(c.lastDay())
	previousWeek := week(c.day().AddDate(0, 0, -7))

	grid := Grid{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		thisWeek := week(date)
		grid.add(thisWeek, Cell{
			Date:      date,
			Day:       date.Day(),
			Highlight: highlight && thisWeek == previousWeek,
		})
	}

	return grid
}

// day returns the reference as a civil date; every derived date starts from it
func (c *Calculator) day() time.Time {
	return dateutil.CivilDate(c.reference)
}

func (c *Calculator) firstDay() time.Time {
	return dateutil.FirstDayOfMonth(c.day())
}

func (c *Calculator) lastDay() time.Time {
	return dateutil.LastDayOfMonth(c.day())
}

// gridStart returns the Monday of the week containing first.
// A Sunday belongs to the week that started six days earlier, not the next one.
func gridStart(first time.Time) time.Time {
	if first.Weekday() == time.Sunday {
		return first.AddDate(0, 0, -6)
	}
	return dateutil.StartOfWeek(first)
}

// gridEnd returns the Sunday of the week containing last
func gridEnd(last time.Time) time.Time {
	if last.Weekday() == time.Sunday {
		return last
	}
	return dateutil.EndOfWeek(last)
}

func week(date time.Time) int {
	_, w := dateutil.GetWeekNumber(date)
	return w
}
