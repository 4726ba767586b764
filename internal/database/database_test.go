package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")

	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO competitors (name, home_venue) VALUES ('Angels', 'Angel Stadium')`); err != nil {
		t.Fatalf("insert error: %v", err)
	}
	db.Close()

	t.Run("reopening keeps data and schema", func(t *testing.T) {
		db, err := Open(path, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer db.Close()

		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM competitors`).Scan(&n); err != nil {
			t.Fatalf("count error: %v", err)
		}
		if n != 1 {
			t.Errorf("competitors = %d, want 1", n)
		}
	})

	t.Run("names are unique ignoring case", func(t *testing.T) {
		db, err := Open(path, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec(`INSERT INTO competitors (name) VALUES ('ANGELS')`); err == nil {
			t.Error("expected unique constraint error")
		}
	})
}
