package roster

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultVenueCapacity is the capacity given to venues derived from a
// competitor's home venue, and to synthetic venues created on reload.
const DefaultVenueCapacity = 50000

// UnknownCity is the placeholder city of synthetic venues.
const UnknownCity = "Unknown"

var (
	ErrInvalidCompetitor   = errors.New("competitor name is required")
	ErrDuplicateCompetitor = errors.New("competitor already exists")
	ErrNotFound            = errors.New("competitor not found")
)

// Competitor is a single roster entry. Name is stored as given but compared
// case-insensitively.
type Competitor struct {
	Name      string
	City      string
	Captain   string
	HomeVenue string
}

func (c Competitor) String() string {
	return fmt.Sprintf("%s (%s) - Captain: %s, Home: %s", c.Name, c.City, c.Captain, c.HomeVenue)
}

// Is reports whether name identifies this competitor.
func (c Competitor) Is(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}

// Venue is a place matches are played.
type Venue struct {
	Name     string
	City     string
	Capacity int
}

// SyntheticVenue returns a placeholder venue for a name not derived from any
// competitor.
func SyntheticVenue(name string) Venue {
	return Venue{Name: name, City: UnknownCity, Capacity: DefaultVenueCapacity}
}

// Roster is an ordered collection of competitors.
type Roster struct {
	competitors []Competitor
}

// New builds a roster from competitors in order, rejecting invalid and
// duplicate entries.
func New(competitors ...Competitor) (*Roster, error) {
	r := &Roster{}
	for _, c := range competitors {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a competitor to the end of the roster.
func (r *Roster) Add(c Competitor) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidCompetitor
	}
	if _, ok := r.Lookup(c.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCompetitor, c.Name)
	}
	r.competitors = append(r.competitors, c)
	return nil
}

// Remove deletes the competitor with the given name.
func (r *Roster) Remove(name string) error {
	for i, c := range r.competitors {
		if c.Is(name) {
			r.competitors = append(r.competitors[:i], r.competitors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Lookup finds a competitor by case-insensitive name.
func (r *Roster) Lookup(name string) (Competitor, bool) {
	if strings.TrimSpace(name) == "" {
		return Competitor{}, false
	}
	for _, c := range r.competitors {
		if c.Is(name) {
			return c, true
		}
	}
	return Competitor{}, false
}

// Competitors returns a copy of the roster in order.
func (r *Roster) Competitors() []Competitor {
	out := make([]Competitor, len(r.competitors))
	copy(out, r.competitors)
	return out
}

// InCity returns the competitors based in city.
func (r *Roster) InCity(city string) []Competitor {
	var out []Competitor
	for _, c := range r.competitors {
		if city != "" && strings.EqualFold(c.City, city) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Roster) Len() int {
	return len(r.competitors)
}

// Venues returns one venue per distinct home-venue name, in the order first
// encountered scanning the roster.
func (r *Roster) Venues() []Venue {
	seen := make(map[string]bool)
	var venues []Venue
	for _, c := range r.competitors {
		if c.HomeVenue == "" || seen[c.HomeVenue] {
			continue
		}
		seen[c.HomeVenue] = true
		venues = append(venues, Venue{Name: c.HomeVenue, City: c.City, Capacity: DefaultVenueCapacity})
	}
	return venues
}

// Venue returns the canonical venue with the given name, or a synthetic one
// if no competitor plays there.
func (r *Roster) Venue(name string) Venue {
	for _, v := range r.Venues() {
		if v.Name == name {
			return v
		}
	}
	return SyntheticVenue(name)
}
