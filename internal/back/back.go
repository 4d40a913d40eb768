package back

import (
	"context"
	"errors"
	"fmt"
	"inhouse/internal/config"
	"log"
	"os"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrPlayerNotFound is returned when a steam ID is not part of the dataset.
var ErrPlayerNotFound = errors.New("player not found")

// Back exposes the display views of a dataset. It is immutable once built and
// can be shared between goroutines.
type Back struct {
	config  *config.Config
	dataset Dataset
	names   Names

	leaderboard []LeaderboardEntry
	ranks       map[string]int // steam ID -> index in leaderboard
}

// New loads the dataset from the source selected in the configuration.
func New(ctx context.Context, conf *config.Config) (*Back, error) {
	start := time.Now()

	var patch []byte
	if conf.PatchPath != "" {
		var err error
		if patch, err = os.ReadFile(conf.PatchPath); err != nil {
			return nil, fmt.Errorf("unable to read patch: %w", err)
		}
	}

	ds, names, err := loadDataset(ctx, conf, patch)
	if err != nil {
		return nil, err
	}

	if conf.NamesPath != "" {
		fileNames, err := LoadNamesFile(conf.NamesPath)
		if err != nil {
			return nil, err
		}
		names = names.Merge(fileNames)
	}

	b, err := NewFromDataset(ds, names, conf)
	if err != nil {
		return nil, err
	}

	log.Printf(
		"info: loaded %d players and %d matches in %s",
		len(ds.Players), len(ds.Matches), time.Since(start),
	)

	return b, nil
}

func loadDataset(ctx context.Context, conf *config.Config, patch []byte) (Dataset, Names, error) {
	if conf.SQLDSN == "" {
		log.Printf("debug: reading dataset from %s", conf.DataPath)
		ds, err := LoadDatasetFile(conf.DataPath, patch)
		return ds, Names{}, err
	}

	log.Printf("debug: reading dataset from %s database", conf.SQLDriver)
	db, err := sqlx.ConnectContext(ctx, conf.SQLDriver, conf.SQLDSN)
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	defer db.Close()

	ds, names, err := LoadDatasetSQL(ctx, db)
	if err != nil {
		return Dataset{}, nil, err
	}

	if len(patch) > 0 {
		if ds, err = ds.Patched(patch); err != nil {
			return Dataset{}, nil, fmt.Errorf("unable to apply patch: %w", err)
		}
	}

	return ds, names, nil
}

// NewFromDataset validates the dataset and precomputes the leaderboard.
func NewFromDataset(ds Dataset, names Names, conf *config.Config) (*Back, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	if names == nil {
		names = Names{}
	}

	b := &Back{
		config:  conf,
		dataset: ds,
		names:   names,
	}
	b.leaderboard = b.computeLeaderboard()

	b.ranks = make(map[string]int, len(b.leaderboard))
	for k := range b.leaderboard {
		b.ranks[b.leaderboard[k].SteamID] = k
	}

	return b, nil
}

func (b *Back) computeLeaderboard() []LeaderboardEntry {
	players := make([]Player, 0, len(b.dataset.Players))
	for _, p := range b.dataset.Players {
		players = append(players, p)
	}
	sort.Sort(byRating(players))

	ret := make([]LeaderboardEntry, 0, len(players))
	for k, p := range players {
		ret = append(ret, newLeaderboardEntry(k+1, p, b.displayName(p.SteamID)))
	}

	return ret
}

// displayName is the name shown on the leaderboard, the steam ID if unknown.
func (b *Back) displayName(steamID string) string {
	if name, ok := b.names.Lookup(steamID); ok {
		return name
	}

	return steamID
}
