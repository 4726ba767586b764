package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Store persists a roster between runs.
type Store interface {
	Load(ctx context.Context) (*Roster, error)
	Add(ctx context.Context, c Competitor) error
	Remove(ctx context.Context, name string) error
	Replace(ctx context.Context, competitors []Competitor) error
}

// SQLStore keeps the roster in the competitors table. Roster order is
// insertion order.
type SQLStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLStore(db *sql.DB, logger zerolog.Logger) *SQLStore {
	return &SQLStore{db: db, logger: logger}
}

func (s *SQLStore) Load(ctx context.Context) (*Roster, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, city, captain, home_venue FROM competitors ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying competitors: %w", err)
	}
	defer rows.Close()

	r := &Roster{}
	for rows.Next() {
		var c Competitor
		if err := rows.Scan(&c.Name, &c.City, &c.Captain, &c.HomeVenue); err != nil {
			return nil, fmt.Errorf("scanning competitor: %w", err)
		}
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading competitors: %w", err)
	}

	s.logger.Debug().Int("competitors", r.Len()).Msg("roster loaded")
	return r, nil
}

func (s *SQLStore) Add(ctx context.Context, c Competitor) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidCompetitor
	}

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM competitors WHERE name = ?`, c.Name).Scan(&n); err != nil {
		return fmt.Errorf("checking competitor: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateCompetitor, c.Name)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO competitors (name, city, captain, home_venue) VALUES (?, ?, ?, ?)`,
		c.Name, c.City, c.Captain, c.HomeVenue); err != nil {
		s.logger.Error().Err(err).Str("competitor", c.Name).Msg("failed to add competitor")
		return fmt.Errorf("adding competitor: %w", err)
	}

	s.logger.Info().Str("competitor", c.Name).Msg("competitor added")
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM competitors WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("removing competitor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing competitor: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.logger.Info().Str("competitor", name).Msg("competitor removed")
	return nil
}

// Replace overwrites the stored roster with competitors, in order.
func (s *SQLStore) Replace(ctx context.Context, competitors []Competitor) error {
	// Validate before touching the table.
	if _, err := New(competitors...); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM competitors`); err != nil {
		return fmt.Errorf("clearing competitors: %w", err)
	}
	for _, c := range competitors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO competitors (name, city, captain, home_venue) VALUES (?, ?, ?, ?)`,
			strings.TrimSpace(c.Name), c.City, c.Captain, c.HomeVenue); err != nil {
			return fmt.Errorf("inserting %q: %w", c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing roster: %w", err)
	}

	s.logger.Info().Int("competitors", len(competitors)).Msg("roster replaced")
	return nil
}
