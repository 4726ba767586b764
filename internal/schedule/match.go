package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/derekprior/fixtures/internal/roster"
)

// DateFormat is the ISO layout used for every date the schedule reads or writes.
const DateFormat = "2006-01-02"

var (
	ErrInvalidRoster     = errors.New("invalid roster")
	ErrUnknownCompetitor = errors.New("competitor not found")
	ErrMalformedDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidCapacity   = errors.New("max matches per day must be at least 1")
)

// MatchType labels a match relative to its fixture order.
type MatchType string

const (
	Home    MatchType = "home"
	Away    MatchType = "away"
	Neutral MatchType = "neutral"
)

// ParseMatchType accepts any case of home, away or neutral.
func ParseMatchType(s string) (MatchType, error) {
	switch t := MatchType(strings.ToLower(strings.TrimSpace(s))); t {
	case Home, Away, Neutral:
		return t, nil
	default:
		return "", fmt.Errorf("unknown match type %q", s)
	}
}

// Match is a fixture with a venue, date and sequence number assigned.
type Match struct {
	Number int
	A      roster.Competitor
	B      roster.Competitor
	Venue  roster.Venue
	Date   time.Time
	Type   MatchType
}

// Involves reports whether the named competitor plays in this match.
func (m Match) Involves(name string) bool {
	return m.A.Is(name) || m.B.Is(name)
}

// IsHomeFor reports whether the match is played at c's home venue,
// regardless of which side of the fixture c is on.
func (m Match) IsHomeFor(c roster.Competitor) bool {
	return c.HomeVenue != "" && m.Venue.Name == c.HomeVenue
}

// Opponent returns the other side of the match for the named competitor.
func (m Match) Opponent(name string) (roster.Competitor, bool) {
	switch {
	case m.A.Is(name):
		return m.B, true
	case m.B.Is(name):
		return m.A, true
	}
	return roster.Competitor{}, false
}

func (m Match) String() string {
	return fmt.Sprintf("Match %d: %s vs %s at %s on %s (%s)",
		m.Number, m.A.Name, m.B.Name, m.Venue.Name, m.Date.Format(DateFormat), m.Type)
}

// Schedule is a season's matches in generation order.
type Schedule struct {
	Season  string
	Matches []Match
}

// ForCompetitor returns the matches the named competitor plays in, in
// schedule order.
func (s *Schedule) ForCompetitor(name string) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.Involves(name) {
			out = append(out, m)
		}
	}
	return out
}

// OnDate returns the matches scheduled on date.
func (s *Schedule) OnDate(date time.Time) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.Date.Equal(date) {
			out = append(out, m)
		}
	}
	return out
}

// AtVenue returns the matches played at the named venue.
func (s *Schedule) AtVenue(name string) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.Venue.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// SortedByDate returns a copy of the matches ordered by date, then number.
func (s *Schedule) SortedByDate() []Match {
	return sortByDate(s.Matches)
}

// Span returns the number of calendar days from the first to the last match,
// inclusive. An empty schedule spans zero days.
func (s *Schedule) Span() int {
	if len(s.Matches) == 0 {
		return 0
	}
	first, last := s.Matches[0].Date, s.Matches[0].Date
	for _, m := range s.Matches[1:] {
		if m.Date.Before(first) {
			first = m.Date
		}
		if m.Date.After(last) {
			last = m.Date
		}
	}
	return DaysBetween(first, last) + 1
}

// Stats summarizes the schedule on one line.
func (s *Schedule) Stats() string {
	if len(s.Matches) == 0 {
		return "No matches scheduled"
	}
	return fmt.Sprintf("Season: %s | Total Matches: %d | Duration: %d days",
		s.Season, len(s.Matches), s.Span())
}

// MatchesFor looks name up in r and returns that competitor's matches.
func MatchesFor(s *Schedule, r *roster.Roster, name string) ([]Match, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompetitor, name)
	}
	return s.ForCompetitor(c.Name), nil
}

// MatchesOn parses an ISO date and returns the matches on that day.
func MatchesOn(s *Schedule, date string) ([]Match, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.OnDate(d), nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

// DaysBetween counts calendar days from a to b by their year, month and
// day in their own locations, so a DST change never shortens the count.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortByDate(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Number < out[j].Number
	})
	return out
}
