package deadlines

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

type Frequency string

const (
	Annual  Frequency = "annual"
	Monthly Frequency = "monthly"
)

type Audience string

const (
	Salaried   Audience = "salaried"
	Freelancer Audience = "freelancer"
)

func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case Salaried, Freelancer:
		return Audience(s), nil
	case "":
		return Salaried, nil
	}
	return "", fmt.Errorf("unknown audience %q (want %s or %s)", s, Salaried, Freelancer)
}

type Urgency string

const (
	Overdue  Urgency = "overdue"
	Urgent   Urgency = "urgent"
	Soon     Urgency = "soon"
	Upcoming Urgency = "upcoming"
)

// UrgencyFor buckets a days-remaining count.
func UrgencyFor(days int) Urgency {
	switch {
	case days < 0:
		return Overdue
	case days <= 3:
		return Urgent
	case days <= 15:
		return Soon
	}
	return Upcoming
}

// Definition is a recurring filing or payment date. Month is ignored for
// monthly deadlines.
type Definition struct {
	ID          string
	Title       string
	Description string
	Category    string
	Frequency   Frequency
	Month       time.Month
	Day         int
	Cumulative  string
	Audiences   []Audience
}

func (d Definition) Validate() error {
	switch d.Frequency {
	case Annual:
		if d.Month < time.January || d.Month > time.December {
			return fmt.Errorf("deadline %s: month %d out of range", d.ID, d.Month)
		}
		if d.Day < 1 || d.Day > daysIn(d.Month) {
			return fmt.Errorf("deadline %s: day %d out of range for %s", d.ID, d.Day, d.Month)
		}
	case Monthly:
		// Every month must contain the day.
		if d.Day < 1 || d.Day > 28 {
			return fmt.Errorf("deadline %s: monthly day %d must be within 1-28", d.ID, d.Day)
		}
	default:
		return fmt.Errorf("deadline %s: unknown frequency %q", d.ID, d.Frequency)
	}
	if len(d.Audiences) == 0 {
		return fmt.Errorf("deadline %s: no audience", d.ID)
	}
	return nil
}

func (d Definition) For(a Audience) bool {
	return slices.Contains(d.Audiences, a)
}

func daysIn(m time.Month) int {
	// Leap year so Feb 29 is accepted.
	return time.Date(2024, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day truncates t to midnight in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NextDue returns the next occurrence of d on or after today. A deadline that
// falls on today is still due today.
func NextDue(d Definition, today time.Time) time.Time {
	loc := today.Location()
	switch d.Frequency {
	case Monthly:
		due := time.Date(today.Year(), today.Month(), d.Day, 0, 0, 0, 0, loc)
		if due.Before(today) {
			due = time.Date(today.Year(), today.Month()+1, d.Day, 0, 0, 0, 0, loc)
		}
		return due
	default:
		due := time.Date(today.Year(), d.Month, d.Day, 0, 0, 0, 0, loc)
		if due.Before(today) {
			due = time.Date(today.Year()+1, d.Month, d.Day, 0, 0, 0, 0, loc)
		}
		return due
	}
}

// DaysRemaining counts calendar days from today to due; negative once due
// has passed.
func DaysRemaining(today, due time.Time) int {
	a := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

type Reminder struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Cumulative    string  `json:"cumulative,omitempty"`
	DueDate       string  `json:"due_date"`
	DaysRemaining int     `json:"days_remaining"`
	Urgency       Urgency `json:"urgency"`
}

// Tracker resolves deadline definitions against a clock in one location.
type Tracker struct {
	defs []Definition
	loc  *time.Location
}

func NewTracker(defs []Definition, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{defs: defs, loc: loc}
}

func (t *Tracker) Location() *time.Location { return t.loc }

// Upcoming returns the reminders that apply to audience, nearest first.
func (t *Tracker) Upcoming(now time.Time, audience Audience) []Reminder {
	return t.collect(now, func(d Definition) bool { return d.For(audience) })
}

// All returns a reminder for every definition regardless of audience.
func (t *Tracker) All(now time.Time) []Reminder {
	return t.collect(now, func(Definition) bool { return true })
}

func (t *Tracker) collect(now time.Time, keep func(Definition) bool) []Reminder {
	today := Day(now, t.loc)

	out := make([]Reminder, 0, len(t.defs))
	for _, d := range t.defs {
		if keep(d) {
			out = append(out, t.remind(d, today))
		}
	}
	slices.SortStableFunc(out, func(a, b Reminder) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	return out
}

// NextInCategory returns the nearest reminder of the given category.
func (t *Tracker) NextInCategory(now time.Time, category string) (Reminder, bool) {
	today := Day(now, t.loc)

	var best Reminder
	found := false
	for _, d := range t.defs {
		if d.Category != category {
			continue
		}
		r := t.remind(d, today)
		if !found || r.DaysRemaining < best.DaysRemaining {
			best, found = r, true
		}
	}
	return best, found
}

func (t *Tracker) remind(d Definition, today time.Time) Reminder {
	due := NextDue(d, today)
	days := DaysRemaining(today, due)
	return Reminder{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		Cumulative:    d.Cumulative,
		DueDate:       due.Format("2006-01-02"),
		DaysRemaining: days,
		Urgency:       UrgencyFor(days),
	}
}

// DaysText is the human label for a days-remaining count.
func DaysText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", days)
}
