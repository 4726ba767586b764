package analyzer

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
)

// DefaultBackToBackDays is the largest gap between two of a competitor's
// matches that still counts as back-to-back.
const DefaultBackToBackDays = 1

// CompetitorFairness holds per-competitor balance figures.
type CompetitorFairness struct {
	Competitor string
	Matches    int
	Home       int
	Away       int
	BackToBack bool
}

// FairnessReport covers every roster competitor in roster order.
type FairnessReport struct {
	Competitors []CompetitorFairness
	// HomeMean and HomeStdDev summarize home-match counts across the roster.
	HomeMean   float64
	HomeStdDev float64
}

// Fairness reports home/away balance and back-to-back matches for each
// competitor. A match counts as home for a competitor when it is played at
// that competitor's home venue, whichever side of the fixture they are on.
// thresholdDays below zero falls back to DefaultBackToBackDays.
func Fairness(s *schedule.Schedule, r *roster.Roster, thresholdDays int) FairnessReport {
	if thresholdDays < 0 {
		thresholdDays = DefaultBackToBackDays
	}

	var report FairnessReport
	var homes []float64
	for _, c := range r.Competitors() {
		matches := s.ForCompetitor(c.Name)
		f := CompetitorFairness{Competitor: c.Name, Matches: len(matches)}
		for _, m := range matches {
			if m.IsHomeFor(c) {
				f.Home++
			}
		}
		f.Away = f.Matches - f.Home
		f.BackToBack = hasBackToBack(matches, thresholdDays)

		report.Competitors = append(report.Competitors, f)
		homes = append(homes, float64(f.Home))
	}

	switch len(homes) {
	case 0:
	case 1:
		report.HomeMean = homes[0]
	default:
		report.HomeMean, report.HomeStdDev = stat.MeanStdDev(homes, nil)
	}
	return report
}

func hasBackToBack(matches []schedule.Match, thresholdDays int) bool {
	dates := make([]time.Time, len(matches))
	for i, m := range matches {
		dates[i] = m.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for i := 1; i < len(dates); i++ {
		if schedule.DaysBetween(dates[i-1], dates[i]) <= thresholdDays {
			return true
		}
	}
	return false
}
