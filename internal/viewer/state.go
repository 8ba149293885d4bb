// Package viewer serves the calendar UI: a month grid with markers for
// days that have a stored digest, and the selected day's document.
package viewer

import "time"

// MonthView is the navigable year/month pair shown in the calendar.
type MonthView struct {
	Year  int
	Month time.Month
}

// State is the per-session UI state. It is a small value type; all
// transitions go through Apply.
type State struct {
	Month    MonthView
	Selected time.Time // calendar date, midnight in the daily-cut zone
}

// ActionKind enumerates the UI transitions.
type ActionKind int

const (
	ActionPrevMonth ActionKind = iota
	ActionNextMonth
	ActionSelectDay
)

type Action struct {
	Kind ActionKind
	Day  time.Time // ActionSelectDay only
}

// NewState starts on today's date and month.
func NewState(now time.Time) State {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return State{
		Month:    MonthView{Year: now.Year(), Month: now.Month()},
		Selected: day,
	}
}

// Apply is the pure transition function (state, action) -> state'.
func Apply(s State, a Action) State {
	switch a.Kind {
	case ActionPrevMonth:
		if s.Month.Month == time.January {
			s.Month = MonthView{Year: s.Month.Year - 1, Month: time.December}
		} else {
			s.Month = MonthView{Year: s.Month.Year, Month: s.Month.Month - 1}
		}
	case ActionNextMonth:
		if s.Month.Month == time.December {
			s.Month = MonthView{Year: s.Month.Year + 1, Month: time.January}
		} else {
			s.Month = MonthView{Year: s.Month.Year, Month: s.Month.Month + 1}
		}
	case ActionSelectDay:
		if !a.Day.IsZero() {
			s.Selected = a.Day
		}
	}
	return s
}
