package back // nolint:testpackage

import (
	"context"
	"inhouse/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// createFixturedTestDB returns the path to a migrated SQLite database filled
// with the development fixtures.
func createFixturedTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inhouse.db")
	migrator, err := migrate.New(
		"file://../../resources/migrations/sqlite3",
		"sqlite3://"+path,
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatal(err)
	}
	migrator.Close()

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := LoadFixtures(context.Background(), db); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadDatasetSQL(t *testing.T) {
	path := createFixturedTestDB(t)

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ds, names, err := LoadDatasetSQL(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Players) != len(fixturePlayers) {
		t.Errorf("expected %d players, got %d", len(fixturePlayers), len(ds.Players))
	}
	if len(ds.Matches) != fixtureMatches {
		t.Errorf("expected %d matches, got %d", fixtureMatches, len(ds.Matches))
	}
	if len(names) != len(fixturePlayers)-1 {
		t.Errorf("expected %d names, got %d", len(fixturePlayers)-1, len(names))
	}
	if !ds.LastScraped.Valid {
		t.Error("expected last scraped date")
	}

	for k := 1; k < len(ds.Matches); k++ {
		if ds.Matches[k].Date.Time().Before(ds.Matches[k-1].Date.Time()) {
			t.Errorf("matches not in chronological order at #%d", k)
		}
	}

	for k, m := range ds.Matches {
		if m.ID.IsZero() {
			t.Errorf("match #%d has no ID", k)
		}
		if len(m.Radiant) != 5 || len(m.Dire) != 5 {
			t.Errorf("match #%d: expected 5v5, got %dv%d", k, len(m.Radiant), len(m.Dire))
		}
		if m.DotaMatchID.Valid != (k%2 == 0) {
			t.Errorf("match #%d: unexpected Dota match ID %v", k, m.DotaMatchID)
		}
	}

	p := ds.Players["76561198000000001"]
	if p.SteamID != "76561198000000001" || p.Mu != 31.2 || p.Games != fixtureMatches {
		t.Errorf("unexpected player %+v", p)
	}
	if p.Wins+p.Losses != p.Games {
		t.Errorf("inconsistent counters %+v", p)
	}

	if err := ds.Validate(); err != nil {
		t.Error(err)
	}
}

func TestNewFromSQL(t *testing.T) {
	path := createFixturedTestDB(t)
	patchPath := filepath.Join(t.TempDir(), "patch.json")
	if err := os.WriteFile(patchPath, []byte(`{"players": {"76561198000000010": null}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	namesPath := filepath.Join(t.TempDir(), "names.json")
	if err := os.WriteFile(namesPath, []byte(`{"76561198000000001": "Carl"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := New(context.Background(), &config.Config{
		SQLDriver: "sqlite3",
		SQLDSN:    path,
		PatchPath: patchPath,
		NamesPath: namesPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	if actual := len(b.GetLeaderboard()); actual != len(fixturePlayers)-1 {
		t.Errorf("expected the patch to hide a player, got %d entries", actual)
	}

	top, err := b.GetPlayer("76561198000000001")
	if err != nil {
		t.Fatal(err)
	}
	if top.Name != "Carl" {
		t.Errorf("expected names file to take precedence, got %s", top.Name)
	}

	rubick, err := b.GetPlayer("76561198000000002")
	if err != nil {
		t.Fatal(err)
	}
	if rubick.Name != "Rubick" {
		t.Errorf("expected database name, got %s", rubick.Name)
	}

	if recent := b.GetRecentMatches(0); len(recent) != 10 {
		t.Errorf("expected 10 recent matches, got %d", len(recent))
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(testDataJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := New(context.Background(), &config.Config{DataPath: path})
	if err != nil {
		t.Fatal(err)
	}

	if stats := b.GetStats(); stats.TotalPlayers != 2 || stats.TotalMatches != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}

	if _, err := New(context.Background(), &config.Config{
		DataPath:  path,
		PatchPath: filepath.Join(t.TempDir(), "missing.json"),
	}); err == nil {
		t.Error("expected error on missing patch file")
	}
}
