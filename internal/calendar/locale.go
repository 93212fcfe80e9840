package calendar

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frenchWeekdays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var frenchShortWeekdays = [...]string{
	"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam",
}

// MonthLabel renders "octobre 2026".
func MonthLabel(d Date) string {
	return fmt.Sprintf("%s %d", frenchMonths[d.Month-1], d.Year)
}

// LongLabel renders "mardi 14 octobre 2025".
func LongLabel(d Date) string {
	return fmt.Sprintf("%s %d %s %d", frenchWeekdays[d.Weekday()], d.Day, frenchMonths[d.Month-1], d.Year)
}

func ShortWeekday(wd time.Weekday) string {
	return frenchShortWeekdays[wd]
}
