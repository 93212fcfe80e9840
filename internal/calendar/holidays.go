package calendar

import (
	"fmt"
	"sort"
)

// HolidaySet is the union of the non-working public holidays of every
// configured year. It is read-only once built.
type HolidaySet struct {
	days  map[Date]struct{}
	years map[int]struct{}
}

// NewHolidaySet unions the per-year ISO date lists into one lookup set.
// Every entry must be a valid YYYY-MM-DD date.
func NewHolidaySet(byYear map[int][]string) (HolidaySet, error) {
	set := HolidaySet{
		days:  make(map[Date]struct{}),
		years: make(map[int]struct{}, len(byYear)),
	}
	for year, list := range byYear {
		set.years[year] = struct{}{}
		for _, raw := range list {
			d, err := ParseDate(raw)
			if err != nil {
				return HolidaySet{}, fmt.Errorf("holidays %d: %w", year, err)
			}
			set.days[d] = struct{}{}
			set.years[d.Year] = struct{}{}
		}
	}
	return set, nil
}

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h.days[d]
	return ok
}

// Covers reports whether holidays were configured for year. For other
// years the holiday rule never fires.
func (h HolidaySet) Covers(year int) bool {
	_, ok := h.years[year]
	return ok
}

func (h HolidaySet) Years() []int {
	years := make([]int, 0, len(h.years))
	for y := range h.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (h HolidaySet) Len() int {
	return len(h.days)
}
