package back

import (
	"inhouse/internal/config"
	"inhouse/internal/util"
)

// Stats holds the league summary shown above the leaderboard.
type Stats struct {
	TotalPlayers, TotalMatches int
	LastUpdated                util.NullTimeAsTimestamp

	// Highlights, nil when there is no candidate.
	HighestRated, MostGames, BestWinrate *LeaderboardEntry

	// Games required to be eligible for BestWinrate.
	MinGamesForWinrate int
}

func (b *Back) GetStats() Stats {
	ret := Stats{
		TotalPlayers:       len(b.dataset.Players),
		TotalMatches:       len(b.dataset.Matches),
		LastUpdated:        b.dataset.LastScraped,
		MinGamesForWinrate: b.minGamesForWinrate(),
	}

	if len(b.leaderboard) == 0 {
		return ret
	}

	highest := b.leaderboard[0]
	ret.HighestRated = &highest

	// Strict comparisons keep the best rated player on ties.
	for k := range b.leaderboard {
		v := b.leaderboard[k]
		if ret.MostGames == nil || v.Games > ret.MostGames.Games {
			ret.MostGames = &v
		}

		if v.Games < ret.MinGamesForWinrate {
			continue
		}

		if ret.BestWinrate == nil || v.Winrate > ret.BestWinrate.Winrate {
			ret.BestWinrate = &v
		}
	}

	return ret
}

func (b *Back) minGamesForWinrate() int {
	if b.config == nil || b.config.MinGamesForWinrate <= 0 {
		return config.DefaultMinGamesForWinrate
	}

	return b.config.MinGamesForWinrate
}

func (b *Back) recentMatches() int {
	if b.config == nil || b.config.RecentMatches <= 0 {
		return config.DefaultRecentMatches
	}

	return b.config.RecentMatches
}
