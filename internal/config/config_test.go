package config_test

import (
	"inhouse/internal/config"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}

	if c.RecentMatches != config.DefaultRecentMatches {
		t.Errorf("expected %d recent matches, got %d", config.DefaultRecentMatches, c.RecentMatches)
	}
	if c.MinGamesForWinrate != config.DefaultMinGamesForWinrate {
		t.Errorf("expected %d min games, got %d", config.DefaultMinGamesForWinrate, c.MinGamesForWinrate)
	}
	if c.Locale != "en" || c.SQLDriver != "sqlite3" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := config.Config{
		DataPath:      "inhouse.js",
		Locale:        "fr",
		Title:         "Ligue",
		RecentMatches: 5,
	}
	if err := c.Write(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.DataPath != "inhouse.js" || loaded.Locale != "fr" || loaded.Title != "Ligue" {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.RecentMatches != 5 {
		t.Errorf("expected 5 recent matches, got %d", loaded.RecentMatches)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("INHOUSE_TITLE", "From env")
	t.Setenv("INHOUSE_RECENT_MATCHES", "20")
	t.Setenv("INHOUSE_MIN_GAMES_FOR_WINRATE", "not a number")

	c, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}

	if c.Title != "From env" {
		t.Errorf("expected env title, got %s", c.Title)
	}
	if c.RecentMatches != 20 {
		t.Errorf("expected 20 recent matches, got %d", c.RecentMatches)
	}
	if c.MinGamesForWinrate != config.DefaultMinGamesForWinrate {
		t.Errorf("expected default min games, got %d", c.MinGamesForWinrate)
	}
}

func TestValidate(t *testing.T) {
	type entry struct {
		conf  config.Config
		valid bool
	}

	cases := []entry{
		{config.Config{Locale: "en", SQLDriver: "sqlite3", DataPath: "data.json"}, true},
		{config.Config{Locale: "en", SQLDriver: "postgres", SQLDSN: "postgres://"}, true},
		{config.Config{Locale: "not a locale!", SQLDriver: "sqlite3", DataPath: "data.json"}, false},
		{config.Config{Locale: "en", SQLDriver: "mysql", DataPath: "data.json"}, false},
		{config.Config{Locale: "en", SQLDriver: "sqlite3"}, false},
	}

	for k, v := range cases {
		err := v.conf.Validate()
		if v.valid && err != nil {
			t.Errorf("case #%d: unexpected error: %s", k, err)
		}
		if !v.valid && err == nil {
			t.Errorf("case #%d: expected error", k)
		}
	}
}
