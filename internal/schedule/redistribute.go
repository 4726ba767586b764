package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Redistribute caps the number of matches on each date at maxPerDay. For an
// over-full date the overflow is taken from the end of that date's matches:
// the last moves to the next day, the one before it to the day after, and so
// on. Dates are rewritten in place; numbers, venues and labels are kept.
//
// Grouping is computed once from the schedule as given, so a date that
// receives overflow is not itself re-checked.
func Redistribute(s *Schedule, maxPerDay int) error {
	if maxPerDay < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidCapacity, maxPerDay)
	}

	byDate := make(map[time.Time][]int)
	var dates []time.Time
	for i, m := range s.Matches {
		if _, ok := byDate[m.Date]; !ok {
			dates = append(dates, m.Date)
		}
		byDate[m.Date] = append(byDate[m.Date], i)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, d := range dates {
		group := byDate[d]
		extra := len(group) - maxPerDay
		next := d.AddDate(0, 0, 1)
		for i := 0; i < extra; i++ {
			s.Matches[group[len(group)-1-i]].Date = next
			next = next.AddDate(0, 0, 1)
		}
	}
	return nil
}
