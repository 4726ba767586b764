package strategy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/derekprior/fixtures/internal/roster"
)

func competitors(n int) []roster.Competitor {
	out := make([]roster.Competitor, n)
	for i := range out {
		name := fmt.Sprintf("T%d", i+1)
		out[i] = roster.Competitor{Name: name, HomeVenue: "V" + name}
	}
	return out
}

func TestRoundRobinCoverage(t *testing.T) {
	s := &RoundRobin{}
	for n := 2; n <= 12; n++ {
		t.Run(fmt.Sprintf("%d competitors", n), func(t *testing.T) {
			cs := competitors(n)
			fixtures, err := s.GenerateFixtures(cs)
			if err != nil {
				t.Fatalf("GenerateFixtures() error: %v", err)
			}

			if want := n * (n - 1) / 2; len(fixtures) != want {
				t.Errorf("fixtures = %d, want %d", len(fixtures), want)
			}

			type pair struct{ a, b string }
			seen := make(map[pair]int)
			counts := make(map[string]int)
			for _, f := range fixtures {
				if f.A.Name == f.B.Name {
					t.Errorf("%s paired with itself", f.A.Name)
				}
				if f.A.Name == "" || f.B.Name == "" {
					t.Error("fixture references the bye seat")
				}
				a, b := f.A.Name, f.B.Name
				if a > b {
					a, b = b, a
				}
				seen[pair{a, b}]++
				counts[f.A.Name]++
				counts[f.B.Name]++
			}
			for p, c := range seen {
				if c != 1 {
					t.Errorf("%s vs %s appears %d times, want 1", p.a, p.b, c)
				}
			}
			for _, c := range cs {
				if counts[c.Name] != n-1 {
					t.Errorf("%s plays %d times, want %d", c.Name, counts[c.Name], n-1)
				}
			}
		})
	}
}

func TestRoundRobinFirstRound(t *testing.T) {
	cs := []roster.Competitor{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	fixtures, err := (&RoundRobin{}).GenerateFixtures(cs)
	if err != nil {
		t.Fatalf("GenerateFixtures() error: %v", err)
	}
	if len(fixtures) != 6 {
		t.Fatalf("fixtures = %d, want 6", len(fixtures))
	}

	want := [][2]string{
		{"A", "D"}, {"B", "C"}, // round 1
		{"A", "C"}, {"D", "B"}, // round 2: [A D B C]
		{"A", "B"}, {"C", "D"}, // round 3: [A C D B]
	}
	for i, w := range want {
		if fixtures[i].A.Name != w[0] || fixtures[i].B.Name != w[1] {
			t.Errorf("fixture %d = %s vs %s, want %s vs %s",
				i, fixtures[i].A.Name, fixtures[i].B.Name, w[0], w[1])
		}
	}
}

func TestRoundRobinOddRoster(t *testing.T) {
	cs := competitors(5)
	fixtures, err := (&RoundRobin{}).GenerateFixtures(cs)
	if err != nil {
		t.Fatalf("GenerateFixtures() error: %v", err)
	}
	if len(fixtures) != 10 {
		t.Errorf("fixtures = %d, want 10", len(fixtures))
	}

	t.Run("caller slice untouched", func(t *testing.T) {
		if len(cs) != 5 {
			t.Fatalf("roster length = %d, want 5", len(cs))
		}
		for i, c := range cs {
			if want := fmt.Sprintf("T%d", i+1); c.Name != want {
				t.Errorf("roster[%d] = %s, want %s", i, c.Name, want)
			}
		}
	})
}

func TestRoundRobinTooFew(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, err := (&RoundRobin{}).GenerateFixtures(competitors(n))
		if !errors.Is(err, ErrTooFewCompetitors) {
			t.Errorf("%d competitors: error = %v, want ErrTooFewCompetitors", n, err)
		}
	}
}

func TestGet(t *testing.T) {
	if _, err := Get("round_robin"); err != nil {
		t.Errorf("Get(round_robin) error: %v", err)
	}
	if _, err := Get("swiss"); err == nil {
		t.Error("Get(swiss) should fail")
	}
}
