package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/text/language"
)

const (
	DefaultRecentMatches      = 10
	DefaultMinGamesForWinrate = 3
	DefaultListenAddr         = "127.0.0.1:3001"
)

type Config struct {
	// DataPath is the dataset blob, JSON or a `const INHOUSE_DATA = …;` JS file.
	// Ignored when SQLDSN is set.
	DataPath string

	// NamesPath maps steam IDs to display names (JSON, JS or YAML).
	NamesPath string

	// PatchPath is an optional JSON merge patch or JSON patch applied to the
	// dataset before it is read.
	PatchPath string

	// SQLDriver and SQLDSN select a read-only SQL source instead of DataPath.
	SQLDriver, SQLDSN string

	// ResourcesDir contains the templates, static files, locales and migrations.
	ResourcesDir string
	OutputDir    string

	Locale      string
	Title       string
	Description string // markdown

	RecentMatches      int
	MinGamesForWinrate int

	ListenAddr string
}

// Load reads the configuration from the given path or from the user config
// dir if path is empty. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := c.Reload(path); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Reload(path string) error {
	defer c.setDefaults()
	defer c.expandFromEnv()

	if path == "" {
		var err error
		path, err = getOrCreateUserConfigPath()
		if err != nil {
			return err
		}
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		*c = Config{}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}

	return nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"INHOUSE_DATA_PATH", &c.DataPath},
		{"INHOUSE_NAMES_PATH", &c.NamesPath},
		{"INHOUSE_PATCH_PATH", &c.PatchPath},
		{"INHOUSE_SQL_DRIVER", &c.SQLDriver},
		{"INHOUSE_SQL_DSN", &c.SQLDSN},
		{"INHOUSE_RESOURCES_DIR", &c.ResourcesDir},
		{"INHOUSE_OUTPUT_DIR", &c.OutputDir},
		{"INHOUSE_LOCALE", &c.Locale},
		{"INHOUSE_TITLE", &c.Title},
		{"INHOUSE_DESCRIPTION", &c.Description},
		{"INHOUSE_LISTEN_ADDR", &c.ListenAddr},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}

	ints := []struct {
		src string
		dst *int
	}{
		{"INHOUSE_RECENT_MATCHES", &c.RecentMatches},
		{"INHOUSE_MIN_GAMES_FOR_WINRATE", &c.MinGamesForWinrate},
	}

	for _, v := range ints {
		str := os.Getenv(v.src)
		if str == "" {
			continue
		}

		i, err := strconv.Atoi(str)
		if err != nil {
			log.Printf("warning: ignoring %s: %s", v.src, err)
			continue
		}
		*v.dst = i
	}
}

func (c *Config) setDefaults() {
	defaults := []struct {
		dst *string
		val string
	}{
		{&c.DataPath, "data.json"},
		{&c.SQLDriver, "sqlite3"},
		{&c.ResourcesDir, "resources"},
		{&c.OutputDir, "public"},
		{&c.Locale, "en"},
		{&c.Title, "AD Inhouse League"},
		{&c.ListenAddr, DefaultListenAddr},
	}

	for _, v := range defaults {
		if *v.dst == "" {
			*v.dst = v.val
		}
	}

	if c.RecentMatches <= 0 {
		c.RecentMatches = DefaultRecentMatches
	}

	if c.MinGamesForWinrate <= 0 {
		c.MinGamesForWinrate = DefaultMinGamesForWinrate
	}
}

// Validate returns an error if the configuration cannot be used as-is.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	switch c.SQLDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported SQL driver %q", c.SQLDriver)
	}

	if c.SQLDSN == "" && c.DataPath == "" {
		return fmt.Errorf("either a data path or a SQL DSN is required")
	}

	return nil
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "inhouse")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write(path string) error {
	if path == "" {
		var err error
		path, err = getOrCreateUserConfigPath()
		if err != nil {
			return err
		}
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
