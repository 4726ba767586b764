package strategy

import (
	"errors"
	"fmt"

	"github.com/derekprior/fixtures/internal/roster"
)

// ErrTooFewCompetitors is returned when a roster cannot produce any fixture.
var ErrTooFewCompetitors = errors.New("at least 2 competitors are required")

// Fixture is an unordered pairing of two competitors before a date or venue
// is assigned. A is the first competitor in generation order.
type Fixture struct {
	A roster.Competitor
	B roster.Competitor
}

// Strategy generates the fixtures for a season.
type Strategy interface {
	GenerateFixtures(competitors []roster.Competitor) ([]Fixture, error)
}

// RoundRobinName selects RoundRobin. It is also the default.
const RoundRobinName = "round_robin"

// Get returns a Strategy by name. An empty name selects the default.
func Get(name string) (Strategy, error) {
	switch name {
	case RoundRobinName, "":
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// bye marks the empty seat added to odd-sized rosters.
const bye = -1

// RoundRobin pairs every competitor with every other exactly once using the
// circle method. The first competitor is anchored; the others rotate one
// seat per round.
type RoundRobin struct{}

func (s *RoundRobin) GenerateFixtures(competitors []roster.Competitor) ([]Fixture, error) {
	n := len(competitors)
	if n < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrTooFewCompetitors, n)
	}

	// Seats hold roster indexes so the caller's slice is never modified.
	seats := make([]int, n, n+1)
	for i := range seats {
		seats[i] = i
	}
	if n%2 == 1 {
		seats = append(seats, bye)
	}
	size := len(seats)

	fixtures := make([]Fixture, 0, n*(n-1)/2)
	for round := 0; round < size-1; round++ {
		for i := 0; i < size/2; i++ {
			a, b := seats[i], seats[size-1-i]
			if a == bye || b == bye {
				continue
			}
			fixtures = append(fixtures, Fixture{A: competitors[a], B: competitors[b]})
		}
		rotate(seats)
	}

	return fixtures, nil
}

// rotate moves the last seat to position 1, leaving the anchor in place.
func rotate(seats []int) {
	if len(seats) <= 2 {
		return
	}
	last := seats[len(seats)-1]
	copy(seats[2:], seats[1:len(seats)-1])
	seats[1] = last
}
