package analyzer

import (
	"fmt"
	"time"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
)

// Violation kinds.
const (
	MatchCount    = "match_count"
	DateCollision = "date_collision"
)

// Violation is a single validation failure.
type Violation struct {
	Kind       string
	Competitor string    // set for MatchCount
	Date       time.Time // set for DateCollision
	Message    string
}

// ValidationReport is the outcome of Validate.
type ValidationReport struct {
	Violations []Violation
}

func (r ValidationReport) Passed() bool {
	return len(r.Violations) == 0
}

// Validate checks that every competitor plays each of the others exactly
// once and that no two matches anywhere in the schedule share a date. The
// date check is schedule-wide, not per venue.
func Validate(s *schedule.Schedule, r *roster.Roster) ValidationReport {
	var report ValidationReport
	report.Violations = append(report.Violations, checkMatchCounts(s, r)...)
	report.Violations = append(report.Violations, checkDateCollisions(s)...)
	return report
}

func checkMatchCounts(s *schedule.Schedule, r *roster.Roster) []Violation {
	expected := r.Len() - 1

	var violations []Violation
	for _, c := range r.Competitors() {
		actual := len(s.ForCompetitor(c.Name))
		if actual != expected {
			violations = append(violations, Violation{
				Kind:       MatchCount,
				Competitor: c.Name,
				Message:    fmt.Sprintf("%s has %d matches, expected %d", c.Name, actual, expected),
			})
		}
	}
	return violations
}

// checkDateCollisions reports each shared date once, in date order.
func checkDateCollisions(s *schedule.Schedule) []Violation {
	sorted := s.SortedByDate()

	var violations []Violation
	for i := 1; i < len(sorted); i++ {
		d := sorted[i].Date
		if !d.Equal(sorted[i-1].Date) {
			continue
		}
		if n := len(violations); n > 0 && violations[n-1].Date.Equal(d) {
			continue
		}
		violations = append(violations, Violation{
			Kind:    DateCollision,
			Date:    d,
			Message: fmt.Sprintf("Multiple matches on %s (%d)", d.Format(schedule.DateFormat), len(s.OnDate(d))),
		})
	}
	return violations
}
