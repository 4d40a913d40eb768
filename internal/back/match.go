package back

import (
	"inhouse/internal/util"
	"strings"

	"gopkg.in/guregu/null.v4"
)

// Side is one of the two teams of a match.
type Side string

const (
	SideRadiant Side = "radiant"
	SideDire    Side = "dire"
)

func (s Side) Valid() bool {
	return s == SideRadiant || s == SideDire
}

// Title returns the side as a proper noun, eg. "Radiant".
func (s Side) Title() string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Upper returns the side in capitals, eg. "RADIANT".
func (s Side) Upper() string {
	return strings.ToUpper(string(s))
}

type Match struct {
	ID util.UUIDAsBlob `json:"-" db:"ID"`

	Radiant     util.StringArrayAsJSON `json:"radiant" db:"Radiant"`
	Dire        util.StringArrayAsJSON `json:"dire" db:"Dire"`
	Winner      Side                   `json:"winner" db:"Winner"`
	Date        util.TimeAsTimestamp   `json:"date" db:"Date"`
	DotaMatchID null.Int               `json:"matchId" db:"DotaMatchID"`
}

// SideOf returns the side the given player was on, or an empty Side if the
// player did not play that match.
func (m Match) SideOf(steamID string) Side {
	for _, v := range m.Radiant {
		if v == steamID {
			return SideRadiant
		}
	}

	for _, v := range m.Dire {
		if v == steamID {
			return SideDire
		}
	}

	return ""
}
