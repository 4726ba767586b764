package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/strategy"
)

// DaysBetweenMatches is the fixed cadence between consecutive fixtures.
const DaysBetweenMatches = 2

// Generator assembles schedules from the fixtures its Strategy produces.
// The zero value uses round-robin.
type Generator struct {
	Strategy strategy.Strategy
}

// Generate builds a single round-robin schedule for r with the default
// strategy.
func Generate(r *roster.Roster, season string, start time.Time) (*Schedule, error) {
	return Generator{}.Generate(r, season, start)
}

// GenerateConstrained is Generate followed by Redistribute.
func GenerateConstrained(r *roster.Roster, season string, start time.Time, maxPerDay int) (*Schedule, error) {
	return Generator{}.GenerateConstrained(r, season, start, maxPerDay)
}

// Generate builds a schedule for r. Matches are numbered from 1 in
// generation order and dated every DaysBetweenMatches days from start.
func (g Generator) Generate(r *roster.Roster, season string, start time.Time) (*Schedule, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no roster", ErrInvalidRoster)
	}

	strat := g.Strategy
	if strat == nil {
		strat = &strategy.RoundRobin{}
	}

	fixtures, err := strat.GenerateFixtures(r.Competitors())
	if err != nil {
		if errors.Is(err, strategy.ErrTooFewCompetitors) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
		}
		return nil, err
	}

	return assemble(fixtures, r.Venues(), season, start), nil
}

// GenerateConstrained builds a schedule and then caps the number of matches
// on any one day at maxPerDay.
func (g Generator) GenerateConstrained(r *roster.Roster, season string, start time.Time, maxPerDay int) (*Schedule, error) {
	if maxPerDay < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, maxPerDay)
	}

	s, err := g.Generate(r, season, start)
	if err != nil {
		return nil, err
	}
	if err := Redistribute(s, maxPerDay); err != nil {
		return nil, err
	}
	return s, nil
}

func assemble(fixtures []strategy.Fixture, venues []roster.Venue, season string, start time.Time) *Schedule {
	s := &Schedule{
		Season:  season,
		Matches: make([]Match, 0, len(fixtures)),
	}
	for i, f := range fixtures {
		venue, typ := ResolveVenue(f.A, f.B, venues)
		s.Matches = append(s.Matches, Match{
			Number: i + 1,
			A:      f.A,
			B:      f.B,
			Venue:  venue,
			Date:   start.AddDate(0, 0, DaysBetweenMatches*i),
			Type:   typ,
		})
	}
	return s
}
