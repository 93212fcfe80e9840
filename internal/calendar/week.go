package calendar

// Week is a Monday-start window of seven consecutive days.
type Week struct {
	Start Date
}

// WeekOf returns the week containing anchor.
func WeekOf(anchor Date) Week {
	offset := (int(anchor.Weekday()) + 6) % 7
	return Week{Start: anchor.AddDays(-offset)}
}

// Step moves an anchor by n whole weeks (negative n goes back).
func Step(anchor Date, n int) Date {
	return anchor.AddDays(7 * n)
}

func (w Week) End() Date {
	return w.Start.AddDays(6)
}

func (w Week) Days() [7]Date {
	var days [7]Date
	for i := range days {
		days[i] = w.Start.AddDays(i)
	}
	return days
}

func (w Week) Next() Week {
	return Week{Start: Step(w.Start, 1)}
}

func (w Week) Prev() Week {
	return Week{Start: Step(w.Start, -1)}
}

func (w Week) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End())
}

// DayView is one cell of the rendered week.
type DayView struct {
	Date     Date     `json:"date"`
	Weekday  string   `json:"weekday"`
	Bookable bool     `json:"bookable"`
	Status   string   `json:"status"`
	Reasons  []Reason `json:"reasons,omitempty"`
}

// WeekView is the week window around an anchor, evaluated against today.
type WeekView struct {
	Anchor Date      `json:"anchor"`
	Start  Date      `json:"start"`
	End    Date      `json:"end"`
	Label  string    `json:"label"`
	Prev   Date      `json:"prev"`
	Next   Date      `json:"next"`
	Days   []DayView `json:"days"`
}

const statusBookable = "bookable"

// WeekView evaluates every day of the week containing anchor. The label
// names the anchor's month, as shown above the week grid.
func (e *Evaluator) WeekView(anchor, today Date) WeekView {
	w := WeekOf(anchor)
	view := WeekView{
		Anchor: anchor,
		Start:  w.Start,
		End:    w.End(),
		Label:  MonthLabel(anchor),
		Prev:   Step(anchor, -1),
		Next:   Step(anchor, 1),
		Days:   make([]DayView, 0, 7),
	}
	for _, d := range w.Days() {
		rs := e.Reasons(d, today)
		status := statusBookable
		if len(rs) > 0 {
			status = string(rs[0])
		}
		view.Days = append(view.Days, DayView{
			Date:     d,
			Weekday:  ShortWeekday(d.Weekday()),
			Bookable: len(rs) == 0,
			Status:   status,
			Reasons:  rs,
		})
	}
	return view
}
