package roster

import (
	"errors"
	"testing"
)

func iplRoster(t *testing.T) *Roster {
	t.Helper()
	r, err := New(
		Competitor{Name: "Mumbai Indians", City: "Mumbai", Captain: "Hardik Pandya", HomeVenue: "Wankhede Stadium"},
		Competitor{Name: "Chennai Super Kings", City: "Chennai", Captain: "MS Dhoni", HomeVenue: "M.A. Chidambaram Stadium"},
		Competitor{Name: "Mumbai City", City: "Mumbai", HomeVenue: "Wankhede Stadium"},
		Competitor{Name: "Delhi Capitals", City: "Delhi", Captain: "Rishabh Pant", HomeVenue: "Arun Jaitley Stadium"},
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestAdd(t *testing.T) {
	r := iplRoster(t)

	t.Run("appends in order", func(t *testing.T) {
		if err := r.Add(Competitor{Name: "  Punjab Kings ", City: "Mohali"}); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		cs := r.Competitors()
		if len(cs) != 5 || cs[4].Name != "Punjab Kings" {
			t.Errorf("last competitor = %q, want Punjab Kings", cs[4].Name)
		}
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		err := r.Add(Competitor{Name: "MUMBAI INDIANS"})
		if !errors.Is(err, ErrDuplicateCompetitor) {
			t.Errorf("error = %v, want ErrDuplicateCompetitor", err)
		}
	})

	t.Run("rejects empty names", func(t *testing.T) {
		if err := r.Add(Competitor{Name: "   "}); !errors.Is(err, ErrInvalidCompetitor) {
			t.Errorf("error = %v, want ErrInvalidCompetitor", err)
		}
	})
}

func TestRemove(t *testing.T) {
	r := iplRoster(t)
	if err := r.Remove("chennai super kings"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if _, ok := r.Lookup("Chennai Super Kings"); ok {
		t.Error("removed competitor still found")
	}
	if err := r.Remove("Chennai Super Kings"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	r := iplRoster(t)
	c, ok := r.Lookup("delhi capitals")
	if !ok || c.Name != "Delhi Capitals" {
		t.Errorf("Lookup() = %q, %v", c.Name, ok)
	}
	if _, ok := r.Lookup(""); ok {
		t.Error("empty name should not match")
	}
}

func TestCompetitorsIsACopy(t *testing.T) {
	r := iplRoster(t)
	cs := r.Competitors()
	cs[0].Name = "changed"
	if r.Competitors()[0].Name != "Mumbai Indians" {
		t.Error("Competitors() exposed internal state")
	}
}

func TestInCity(t *testing.T) {
	r := iplRoster(t)
	if got := r.InCity("mumbai"); len(got) != 2 {
		t.Errorf("InCity(mumbai) = %d competitors, want 2", len(got))
	}
	if got := r.InCity(""); len(got) != 0 {
		t.Errorf("InCity(\"\") = %d competitors, want 0", len(got))
	}
}

func TestVenues(t *testing.T) {
	r := iplRoster(t)
	if err := r.Add(Competitor{Name: "Nomads"}); err != nil {
		t.Fatal(err)
	}

	venues := r.Venues()
	want := []string{"Wankhede Stadium", "M.A. Chidambaram Stadium", "Arun Jaitley Stadium"}
	if len(venues) != len(want) {
		t.Fatalf("venues = %d, want %d", len(venues), len(want))
	}
	for i, v := range venues {
		if v.Name != want[i] {
			t.Errorf("venue %d = %q, want %q", i, v.Name, want[i])
		}
		if v.Capacity != DefaultVenueCapacity {
			t.Errorf("%s capacity = %d", v.Name, v.Capacity)
		}
	}
	if venues[0].City != "Mumbai" {
		t.Errorf("Wankhede city = %q, want Mumbai", venues[0].City)
	}

	t.Run("synthetic venue for unknown name", func(t *testing.T) {
		v := r.Venue("Brabourne Stadium")
		if v.City != UnknownCity || v.Capacity != DefaultVenueCapacity {
			t.Errorf("Venue() = %+v", v)
		}
		if r.Venue("Wankhede Stadium").City != "Mumbai" {
			t.Error("known venue should keep its city")
		}
	})
}
