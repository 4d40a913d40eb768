package back

import (
	"inhouse/internal/util"
)

// A LeaderboardEntry is a display row of the leaderboard.
type LeaderboardEntry struct {
	Rank    int
	SteamID string
	Name    string
	Rating  int
	Games   int
	Wins    int
	Losses  int
	Winrate int // percent
	Links   []util.ProfileLink
}

func newLeaderboardEntry(rank int, p Player, name string) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:    rank,
		SteamID: p.SteamID,
		Name:    name,
		Rating:  p.Rating(),
		Games:   p.Games,
		Wins:    p.Wins,
		Losses:  p.Losses,
		Winrate: p.Winrate(),
		Links:   util.ProfileLinks(p.SteamID),
	}
}

// RankClass highlights the podium.
func (e LeaderboardEntry) RankClass() string {
	switch e.Rank {
	case 1:
		return "rank-1"
	case 2:
		return "rank-2"
	case 3:
		return "rank-3"
	default:
		return ""
	}
}

func (e LeaderboardEntry) WinrateClass() string {
	switch {
	case e.Winrate >= 60:
		return "winrate-high"
	case e.Winrate >= 45:
		return "winrate-mid"
	default:
		return "winrate-low"
	}
}

// GetLeaderboard returns every player ordered by rating, best first.
func (b *Back) GetLeaderboard() []LeaderboardEntry {
	ret := make([]LeaderboardEntry, len(b.leaderboard))
	copy(ret, b.leaderboard)

	return ret
}

func (b *Back) GetPlayer(steamID string) (LeaderboardEntry, error) {
	k, ok := b.ranks[steamID]
	if !ok {
		return LeaderboardEntry{}, ErrPlayerNotFound
	}

	return b.leaderboard[k], nil
}
