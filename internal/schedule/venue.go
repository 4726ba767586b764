package schedule

import "github.com/derekprior/fixtures/internal/roster"

// ResolveVenue picks where a fixture is played: A's home venue, else B's,
// else the first venue in venues. The label is relative to fixture order,
// not to either competitor.
func ResolveVenue(a, b roster.Competitor, venues []roster.Venue) (roster.Venue, MatchType) {
	venue, ok := findVenue(venues, a.HomeVenue)
	if !ok {
		venue, ok = findVenue(venues, b.HomeVenue)
	}
	if !ok && len(venues) > 0 {
		venue = venues[0]
	}
	return venue, label(a, b, venue)
}

func label(a, b roster.Competitor, venue roster.Venue) MatchType {
	switch {
	case venue.Name != "" && venue.Name == a.HomeVenue:
		return Home
	case venue.Name != "" && venue.Name == b.HomeVenue:
		return Away
	default:
		return Neutral
	}
}

func findVenue(venues []roster.Venue, name string) (roster.Venue, bool) {
	if name == "" {
		return roster.Venue{}, false
	}
	for _, v := range venues {
		if v.Name == name {
			return v, true
		}
	}
	return roster.Venue{}, false
}
