package back

import (
	"context"
	"inhouse/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

type fixturePlayer struct {
	steamID, name string
	mu, sigma     float64
}

// nolint:gochecknoglobals
var fixturePlayers = []fixturePlayer{
	{"76561198000000001", "Invoker", 31.2, 2.1},
	{"76561198000000002", "Rubick", 29.8, 2.4},
	{"76561198000000003", "Ogre Magi", 27.5, 2.2},
	{"76561198000000004", "Earthshaker", 26.1, 2.9},
	{"76561198000000005", "Pudge", 25.0, 3.1},
	{"76561198000000006", "Tinker", 24.4, 2.6},
	{"76561198000000007", "Meepo", 23.9, 3.4},
	{"76561198000000008", "Techies", 22.0, 2.8},
	{"76561198000000009", "", 25.0, 8.333},
	{"76561198000000010", "Shadow Shaman", 20.5, 3.0},
}

// fixtureMatches is the number of generated matches, teams rotate so every
// player gets some games on both sides.
const fixtureMatches = 12

// LoadFixtures fills an empty database with sample players and matches for
// development and tests.
func LoadFixtures(ctx context.Context, db *sqlx.DB) error {
	builder := statementBuilder(db)
	start := time.Date(2024, time.March, 1, 19, 0, 0, 0, time.UTC)

	type tally struct{ games, wins, losses int }
	tallies := make(map[string]*tally, len(fixturePlayers))
	for _, v := range fixturePlayers {
		tallies[v.steamID] = &tally{}
	}

	matches := make([]Match, 0, fixtureMatches)
	for k := 0; k < fixtureMatches; k++ {
		m := Match{
			ID:     util.NewUUIDAsBlob(),
			Winner: SideRadiant,
			Date:   util.TimeAsTimestamp(start.AddDate(0, 0, k)),
		}
		if k%3 == 0 {
			m.Winner = SideDire
		}
		if k%2 == 0 {
			m.DotaMatchID = null.IntFrom(7600000000 + int64(k))
		}

		for i := range fixturePlayers {
			id := fixturePlayers[(k+i)%len(fixturePlayers)].steamID
			side := SideDire
			if i < len(fixturePlayers)/2 {
				side = SideRadiant
				m.Radiant = append(m.Radiant, id)
			} else {
				m.Dire = append(m.Dire, id)
			}

			tallies[id].games++
			if side == m.Winner {
				tallies[id].wins++
			} else {
				tallies[id].losses++
			}
		}

		matches = append(matches, m)
	}

	return util.Transaction(ctx, db, func(tx *sqlx.Tx) error {
		for _, v := range fixturePlayers {
			t := tallies[v.steamID]
			query, args, err := builder.Insert(`"Player"`).SetMap(squirrel.Eq{
				`"SteamID"`: v.steamID,
				`"Name"`:    null.NewString(v.name, v.name != ""),
				`"Mu"`:      v.mu,
				`"Sigma"`:   v.sigma,
				`"Games"`:   t.games,
				`"Wins"`:    t.wins,
				`"Losses"`:  t.losses,
			}).ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		for _, m := range matches {
			query, args, err := builder.Insert(`"Match"`).SetMap(squirrel.Eq{
				`"ID"`:          m.ID,
				`"Radiant"`:     m.Radiant,
				`"Dire"`:        m.Dire,
				`"Winner"`:      string(m.Winner),
				`"Date"`:        m.Date,
				`"DotaMatchID"`: m.DotaMatchID,
			}).ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		lastScraped := util.TimeAsTimestamp(start.AddDate(0, 0, fixtureMatches).Add(time.Hour))
		query, args, err := builder.Insert(`"Meta"`).
			Columns(`"LastScraped"`).
			Values(lastScraped).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

func statementBuilder(db *sqlx.DB) squirrel.StatementBuilderType {
	if db.DriverName() == "postgres" {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return squirrel.StatementBuilder
}
