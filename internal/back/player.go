package back

import "math"

// A Player is a league member as rated by the upstream skill model.
// The rating parameters (Mu, Sigma) are never modified here.
type Player struct {
	SteamID string `json:"-"`

	Mu     float64 `json:"mu"`
	Sigma  float64 `json:"sigma"`
	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}

// Rating returns the public display rating, a conservative skill estimate
// scaled so a new player starts around 3000.
func (p Player) Rating() int {
	return Rating(p.Mu, p.Sigma)
}

// Winrate returns the percentage of games won, 0 when no game was played.
func (p Player) Winrate() int {
	if p.Games <= 0 {
		return 0
	}

	return int(roundHalfUp(float64(p.Wins) / float64(p.Games) * 100))
}

// Rating converts a (mu, sigma) skill estimate to a display rating:
// (mu - 3σ) × 80 + 3000.
func Rating(mu, sigma float64) int {
	return int(roundHalfUp((mu-3*sigma)*80 + 3000))
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

type byRating []Player

func (a byRating) Len() int {
	return len(a)
}

func (a byRating) Less(i, j int) bool {
	ri, rj := a[i].Rating(), a[j].Rating()
	if ri != rj {
		return ri > rj
	}

	return a[i].SteamID < a[j].SteamID
}

func (a byRating) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}
