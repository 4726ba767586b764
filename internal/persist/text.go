package persist

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/derekprior/fixtures/internal/schedule"
)

// ExportText writes the human-readable form of s to path.
func ExportText(s *schedule.Schedule, path string) error {
	if s == nil {
		return errors.New("no schedule to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteText(f, s); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteText writes a title, the statistics line and one line per match in
// date order.
func WriteText(w io.Writer, s *schedule.Schedule) error {
	if _, err := fmt.Fprintf(w, "=== Schedule %s ===\n%s\n\n", s.Season, s.Stats()); err != nil {
		return err
	}
	for _, m := range s.SortedByDate() {
		if _, err := fmt.Fprintln(w, m); err != nil {
			return err
		}
	}
	return nil
}
