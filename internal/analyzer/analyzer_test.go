package analyzer

import (
	"math"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
)

func date(m, d int) time.Time {
	return time.Date(2026, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testRoster(t *testing.T) *roster.Roster {
	t.Helper()
	r, err := roster.New(
		roster.Competitor{Name: "Angels", City: "Anaheim", HomeVenue: "Angel Stadium"},
		roster.Competitor{Name: "Astros", City: "Houston", HomeVenue: "Minute Maid"},
		roster.Competitor{Name: "Cubs", City: "Chicago", HomeVenue: "Wrigley"},
		roster.Competitor{Name: "Padres", City: "San Diego", HomeVenue: "Petco"},
	)
	if err != nil {
		t.Fatalf("roster.New() error: %v", err)
	}
	return r
}

func findFairness(t *testing.T, report FairnessReport, name string) CompetitorFairness {
	t.Helper()
	for _, f := range report.Competitors {
		if f.Competitor == name {
			return f
		}
	}
	t.Fatalf("%s missing from fairness report", name)
	return CompetitorFairness{}
}

func TestFairnessGeneratedSchedule(t *testing.T) {
	r := testRoster(t)
	s, err := schedule.Generate(r, "2026", date(3, 22))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	report := Fairness(s, r, DefaultBackToBackDays)

	t.Run("one row per competitor in roster order", func(t *testing.T) {
		if len(report.Competitors) != 4 {
			t.Fatalf("rows = %d, want 4", len(report.Competitors))
		}
		if report.Competitors[0].Competitor != "Angels" || report.Competitors[3].Competitor != "Padres" {
			t.Errorf("rows out of roster order: %+v", report.Competitors)
		}
	})

	t.Run("home plus away is total", func(t *testing.T) {
		homes := 0
		for _, f := range report.Competitors {
			if f.Matches != 3 {
				t.Errorf("%s has %d matches, want 3", f.Competitor, f.Matches)
			}
			if f.Home+f.Away != f.Matches {
				t.Errorf("%s: %d home + %d away != %d", f.Competitor, f.Home, f.Away, f.Matches)
			}
			homes += f.Home
		}
		if homes != len(s.Matches) {
			t.Errorf("home matches = %d, want one per match (%d)", homes, len(s.Matches))
		}
	})

	t.Run("two-day cadence has no back-to-back", func(t *testing.T) {
		for _, f := range report.Competitors {
			if f.BackToBack {
				t.Errorf("%s flagged back-to-back", f.Competitor)
			}
		}
	})

	t.Run("summary", func(t *testing.T) {
		if math.Abs(report.HomeMean-1.5) > 1e-9 {
			t.Errorf("HomeMean = %v, want 1.5", report.HomeMean)
		}
		if report.HomeStdDev < 0 {
			t.Errorf("HomeStdDev = %v", report.HomeStdDev)
		}
	})

	t.Run("wider threshold flags back-to-back", func(t *testing.T) {
		wide := Fairness(s, r, 2)
		flagged := 0
		for _, f := range wide.Competitors {
			if f.BackToBack {
				flagged++
			}
		}
		if flagged == 0 {
			t.Error("no competitor flagged with a two-day threshold")
		}
	})
}

func TestFairnessHomeIsPerCompetitor(t *testing.T) {
	r := testRoster(t)
	angels, _ := r.Lookup("Angels")
	cubs, _ := r.Lookup("Cubs")

	// Cubs are side B but the match is at Wrigley.
	s := &schedule.Schedule{Matches: []schedule.Match{
		{Number: 1, A: angels, B: cubs, Venue: roster.Venue{Name: "Wrigley"}, Date: date(4, 1), Type: schedule.Away},
		{Number: 2, A: cubs, B: angels, Venue: roster.Venue{Name: "Wrigley"}, Date: date(4, 2), Type: schedule.Home},
	}}

	report := Fairness(s, r, DefaultBackToBackDays)
	c := findFairness(t, report, "Cubs")
	if c.Home != 2 || c.Away != 0 {
		t.Errorf("Cubs home/away = %d/%d, want 2/0", c.Home, c.Away)
	}
	a := findFairness(t, report, "Angels")
	if a.Home != 0 || a.Away != 2 {
		t.Errorf("Angels home/away = %d/%d, want 0/2", a.Home, a.Away)
	}
	if !c.BackToBack || !a.BackToBack {
		t.Error("consecutive days should be back-to-back")
	}
	if f := findFairness(t, report, "Padres"); f.Matches != 0 || f.BackToBack {
		t.Errorf("Padres = %+v, want no matches", f)
	}
}

func TestFairnessAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	r := testRoster(t)

	// Cubs play on 03-08 and 03-10; clocks spring forward in between.
	s, err := schedule.Generate(r, "2026", time.Date(2026, 3, 6, 0, 0, 0, 0, ny))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	report := Fairness(s, r, DefaultBackToBackDays)
	for _, f := range report.Competitors {
		if f.BackToBack {
			t.Errorf("%s flagged back-to-back with two days between matches", f.Competitor)
		}
	}
}

func TestValidate(t *testing.T) {
	r := testRoster(t)

	t.Run("generated schedule passes", func(t *testing.T) {
		s, err := schedule.Generate(r, "2026", date(3, 22))
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		report := Validate(s, r)
		if !report.Passed() {
			for _, v := range report.Violations {
				t.Errorf("violation: %s", v.Message)
			}
		}
	})

	t.Run("missing match", func(t *testing.T) {
		s, err := schedule.Generate(r, "2026", date(3, 22))
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		s.Matches = s.Matches[1:] // drops Angels vs Padres

		report := Validate(s, r)
		if report.Passed() {
			t.Fatal("expected validation to fail")
		}
		got := map[string]bool{}
		for _, v := range report.Violations {
			if v.Kind != MatchCount {
				t.Errorf("unexpected %s violation: %s", v.Kind, v.Message)
			}
			got[v.Competitor] = true
		}
		if !got["Angels"] || !got["Padres"] || len(got) != 2 {
			t.Errorf("violating competitors = %v, want Angels and Padres", got)
		}
	})

	t.Run("same date at different venues is flagged once", func(t *testing.T) {
		s, err := schedule.Generate(r, "2026", date(3, 22))
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		for i := range s.Matches[:3] {
			s.Matches[i].Date = date(3, 22)
		}

		report := Validate(s, r)
		var collisions []Violation
		for _, v := range report.Violations {
			if v.Kind == DateCollision {
				collisions = append(collisions, v)
			}
		}
		if len(collisions) != 1 {
			t.Fatalf("collisions = %d, want 1", len(collisions))
		}
		if !collisions[0].Date.Equal(date(3, 22)) {
			t.Errorf("collision date = %s", collisions[0].Date.Format(schedule.DateFormat))
		}
		if !strings.Contains(collisions[0].Message, "2026-03-22") {
			t.Errorf("message = %q", collisions[0].Message)
		}
	})
}
