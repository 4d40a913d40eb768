package util

import "net/url"

// A ProfileLink points to a third-party page about a player.
type ProfileLink struct {
	Title, Class, URL string
}

// nolint:gochecknoglobals
var profileSites = []struct {
	title, class, base string
}{
	{"Dotabuff", "link-dotabuff", "https://www.dotabuff.com/players/"},
	{"OpenDota", "link-opendota", "https://www.opendota.com/players/"},
	{"Windrun (Ability Draft)", "link-windrun", "https://windrun.io/players/"},
}

// ProfileLinks returns the third-party profile URLs for a steam ID.
func ProfileLinks(steamID string) []ProfileLink {
	ret := make([]ProfileLink, 0, len(profileSites))
	for _, v := range profileSites {
		ret = append(ret, ProfileLink{
			Title: v.title,
			Class: v.class,
			URL:   v.base + url.PathEscape(steamID),
		})
	}

	return ret
}
