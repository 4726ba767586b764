package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
)

// Extension is appended to schedule file names that lack it.
const Extension = ".csv"

// Header is the first row of every schedule file.
var Header = []string{"Match", "Competitor A", "Competitor B", "Venue", "Date", "Type"}

// WithExtension appends Extension to path unless it already ends with it.
func WithExtension(path string) string {
	if strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// SaveCSV writes s to path (with Extension added if missing) in date order
// and returns the path written.
func SaveCSV(s *schedule.Schedule, path string) (string, error) {
	if s == nil {
		return "", errors.New("no schedule to save")
	}
	path = WithExtension(path)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, s); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// WriteCSV writes the header and one row per match, in date order.
func WriteCSV(w io.Writer, s *schedule.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range s.SortedByDate() {
		if err := cw.Write(Row(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders a match in Header column order.
func Row(m schedule.Match) []string {
	return []string{
		strconv.Itoa(m.Number),
		m.A.Name,
		m.B.Name,
		m.Venue.Name,
		m.Date.Format(schedule.DateFormat),
		string(m.Type),
	}
}

// LoadCSV reads a schedule file. The season label is the file name without
// its extension.
func LoadCSV(path string, r *roster.Roster) (*schedule.Schedule, error) {
	path = WithExtension(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	season := strings.TrimSuffix(filepath.Base(path), Extension)
	return ReadCSV(f, season, r)
}

// ReadCSV parses rows written by WriteCSV. Matches are renumbered from 1 in
// file order; the stored match number is ignored.
func ReadCSV(rd io.Reader, season string, r *roster.Roster) (*schedule.Schedule, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schedule file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	s := &schedule.Schedule{Season: season}
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		m, err := ParseRow(record, r)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		m.Number = len(s.Matches) + 1
		s.Matches = append(s.Matches, m)
	}
	return s, nil
}

// ParseRow builds a match from a row in Header column order. Competitors must
// be on the roster; an unknown venue becomes a synthetic one.
func ParseRow(record []string, r *roster.Roster) (schedule.Match, error) {
	if len(record) < len(Header) {
		return schedule.Match{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}

	a, ok := r.Lookup(record[1])
	if !ok {
		return schedule.Match{}, fmt.Errorf("%w: %q", schedule.ErrUnknownCompetitor, record[1])
	}
	b, ok := r.Lookup(record[2])
	if !ok {
		return schedule.Match{}, fmt.Errorf("%w: %q", schedule.ErrUnknownCompetitor, record[2])
	}
	date, err := schedule.ParseDate(record[4])
	if err != nil {
		return schedule.Match{}, err
	}
	typ, err := schedule.ParseMatchType(record[5])
	if err != nil {
		return schedule.Match{}, err
	}

	return schedule.Match{
		A:     a,
		B:     b,
		Venue: r.Venue(strings.TrimSpace(record[3])),
		Date:  date,
		Type:  typ,
	}, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
