package calendar

// Reason names a rule that makes a day unavailable.
type Reason string

const (
	ReasonPast    Reason = "past"
	ReasonWeekend Reason = "weekend"
	ReasonHoliday Reason = "holiday"
)

// IsBookable reports whether d can be booked given the holiday set and the
// current day. today itself is bookable.
func IsBookable(d Date, holidays HolidaySet, today Date) bool {
	return len(reasons(d, holidays, today)) == 0
}

func reasons(d Date, holidays HolidaySet, today Date) []Reason {
	var out []Reason
	if d.Before(today) {
		out = append(out, ReasonPast)
	}
	if d.IsWeekend() {
		out = append(out, ReasonWeekend)
	}
	if holidays.Contains(d) {
		out = append(out, ReasonHoliday)
	}
	return out
}

// Evaluator binds a holiday set so callers only pass dates around.
type Evaluator struct {
	holidays HolidaySet
}

func NewEvaluator(holidays HolidaySet) *Evaluator {
	return &Evaluator{holidays: holidays}
}

func (e *Evaluator) IsBookable(d, today Date) bool {
	return IsBookable(d, e.holidays, today)
}

// Reasons lists every rule firing for d, in past/weekend/holiday order.
func (e *Evaluator) Reasons(d, today Date) []Reason {
	return reasons(d, e.holidays, today)
}

// Covers reports whether the holiday calendar knows about year.
func (e *Evaluator) Covers(year int) bool {
	return e.holidays.Covers(year)
}

// UncoveredYears returns the years of days missing from the holiday calendar.
func (e *Evaluator) UncoveredYears(days ...Date) []int {
	var out []int
	seen := make(map[int]bool)
	for _, d := range days {
		if seen[d.Year] || e.holidays.Covers(d.Year) {
			continue
		}
		seen[d.Year] = true
		out = append(out, d.Year)
	}
	return out
}
