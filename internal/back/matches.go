package back

import (
	"inhouse/internal/util"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v4"
)

// PlayerRef is a participant as shown on a match card.
type PlayerRef struct {
	SteamID string
	Name    string
	HasPage bool // the player is rated and has their own page
}

// A MatchCard is a display-ready match.
type MatchCard struct {
	ID          util.UUIDAsBlob
	Radiant     []PlayerRef
	Dire        []PlayerRef
	Winner      Side
	Date        util.TimeAsTimestamp
	DotaMatchID null.Int
}

func (m MatchCard) RadiantNames() string {
	return joinNames(m.Radiant)
}

func (m MatchCard) DireNames() string {
	return joinNames(m.Dire)
}

// DotabuffURL returns the match page or an empty string if the Dota match
// ID is unknown.
func (m MatchCard) DotabuffURL() string {
	if !m.DotaMatchID.Valid {
		return ""
	}

	return "https://www.dotabuff.com/matches/" + strconv.FormatInt(m.DotaMatchID.Int64, 10)
}

func joinNames(refs []PlayerRef) string {
	names := make([]string, 0, len(refs))
	for _, v := range refs {
		names = append(names, v.Name)
	}

	return strings.Join(names, ", ")
}

// A PlayerMatch is a match seen from one of its participants.
type PlayerMatch struct {
	MatchCard
	Side Side
	Won  bool
}

// GetRecentMatches returns the n last recorded matches, most recent first.
// A non-positive n uses the configured amount.
func (b *Back) GetRecentMatches(n int) []MatchCard {
	if n <= 0 {
		n = b.recentMatches()
	}

	matches := b.dataset.Matches
	if n > len(matches) {
		n = len(matches)
	}

	ret := make([]MatchCard, 0, n)
	for i := len(matches) - 1; i >= len(matches)-n; i-- {
		ret = append(ret, b.newMatchCard(matches[i]))
	}

	return ret
}

// GetPlayerMatches returns every match a player took part in, most recent
// first.
func (b *Back) GetPlayerMatches(steamID string) ([]PlayerMatch, error) {
	if _, ok := b.ranks[steamID]; !ok {
		return nil, ErrPlayerNotFound
	}

	var ret []PlayerMatch
	for i := len(b.dataset.Matches) - 1; i >= 0; i-- {
		m := b.dataset.Matches[i]
		side := m.SideOf(steamID)
		if side == "" {
			continue
		}

		ret = append(ret, PlayerMatch{
			MatchCard: b.newMatchCard(m),
			Side:      side,
			Won:       side == m.Winner,
		})
	}

	return ret, nil
}

func (b *Back) newMatchCard(m Match) MatchCard {
	return MatchCard{
		ID:          m.ID,
		Radiant:     b.playerRefs(m.Radiant),
		Dire:        b.playerRefs(m.Dire),
		Winner:      m.Winner,
		Date:        m.Date,
		DotaMatchID: m.DotaMatchID,
	}
}

// playerRefs resolves names, unknown players are shortened to the end of
// their steam ID.
func (b *Back) playerRefs(ids []string) []PlayerRef {
	ret := make([]PlayerRef, 0, len(ids))
	for _, id := range ids {
		name, ok := b.names.Lookup(id)
		if !ok {
			name = util.ShortID(id, 4)
		}

		_, rated := b.ranks[id]
		ret = append(ret, PlayerRef{
			SteamID: id,
			Name:    name,
			HasPage: rated,
		})
	}

	return ret
}
