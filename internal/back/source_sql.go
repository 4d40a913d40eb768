package back

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"inhouse/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// sqlPlayer is the Player table row, the name lives next to the ratings.
type sqlPlayer struct {
	SteamID string      `db:"SteamID"`
	Name    null.String `db:"Name"`
	Mu      float64     `db:"Mu"`
	Sigma   float64     `db:"Sigma"`
	Games   int         `db:"Games"`
	Wins    int         `db:"Wins"`
	Losses  int         `db:"Losses"`
}

// LoadDatasetSQL reads the dataset from the Player, Match and Meta tables.
// Nothing is ever written.
func LoadDatasetSQL(ctx context.Context, db *sqlx.DB) (Dataset, Names, error) {
	builder := statementBuilder(db)

	var (
		ds    = Dataset{Players: map[string]Player{}}
		names = Names{}
	)

	if err := util.ReadOnly(ctx, db, func(tx *sqlx.Tx) error {
		players, err := selectPlayers(ctx, tx, builder)
		if err != nil {
			return fmt.Errorf("unable to fetch players: %w", err)
		}

		for _, v := range players {
			ds.Players[v.SteamID] = Player{
				SteamID: v.SteamID,
				Mu:      v.Mu,
				Sigma:   v.Sigma,
				Games:   v.Games,
				Wins:    v.Wins,
				Losses:  v.Losses,
			}
			if v.Name.Valid {
				names[v.SteamID] = v.Name.String
			}
		}

		if ds.Matches, err = selectMatches(ctx, tx, builder); err != nil {
			return fmt.Errorf("unable to fetch matches: %w", err)
		}

		if ds.LastScraped, err = selectLastScraped(ctx, tx, builder); err != nil {
			return fmt.Errorf("unable to fetch metadata: %w", err)
		}

		return nil
	}); err != nil {
		return Dataset{}, nil, err
	}

	ds.normalize()

	return ds, names, nil
}

func selectPlayers(
	ctx context.Context,
	tx *sqlx.Tx,
	builder squirrel.StatementBuilderType,
) ([]sqlPlayer, error) {
	query, args, err := builder.
		Select(`"SteamID"`, `"Name"`, `"Mu"`, `"Sigma"`, `"Games"`, `"Wins"`, `"Losses"`).
		From(`"Player"`).
		OrderBy(`"SteamID" ASC`).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ret []sqlPlayer
	if err := tx.SelectContext(ctx, &ret, query, args...); err != nil {
		return nil, err
	}

	return ret, nil
}

func selectMatches(
	ctx context.Context,
	tx *sqlx.Tx,
	builder squirrel.StatementBuilderType,
) ([]Match, error) {
	query, args, err := builder.
		Select(`"ID"`, `"Radiant"`, `"Dire"`, `"Winner"`, `"Date"`, `"DotaMatchID"`).
		From(`"Match"`).
		OrderBy(`"Date" ASC`, `"Seq" ASC`).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ret []Match
	if err := tx.SelectContext(ctx, &ret, query, args...); err != nil {
		return nil, err
	}

	return ret, nil
}

func selectLastScraped(
	ctx context.Context,
	tx *sqlx.Tx,
	builder squirrel.StatementBuilderType,
) (util.NullTimeAsTimestamp, error) {
	query, args, err := builder.
		Select(`"LastScraped"`).
		From(`"Meta"`).
		Limit(1).
		ToSql()
	if err != nil {
		return util.NullTimeAsTimestamp{}, err
	}

	var ret util.NullTimeAsTimestamp
	if err := tx.GetContext(ctx, &ret, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return util.NullTimeAsTimestamp{}, nil
		}
		return util.NullTimeAsTimestamp{}, err
	}

	return ret, nil
}
