package back

import (
	"bytes"
	"encoding/json"
	"fmt"
	"inhouse/internal/util"
	"log"
	"os"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"
)

// A Dataset is the pre-computed league state: every rated player and every
// recorded match, oldest match first.
type Dataset struct {
	Players     map[string]Player        `json:"players"`
	Matches     []Match                  `json:"matches"`
	LastScraped util.NullTimeAsTimestamp `json:"lastScraped"`
}

// LoadDatasetFile reads a dataset from a JSON file or from a JS file
// assigning the dataset to a variable. If patch is not nil it is applied to
// the document before decoding.
func LoadDatasetFile(path string, patch []byte) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}

	ds, err := DecodeDataset(raw, patch)
	if err != nil {
		return Dataset{}, fmt.Errorf("unable to read dataset %s: %w", path, err)
	}

	return ds, nil
}

// DecodeDataset parses a JSON or JS dataset document.
func DecodeDataset(raw []byte, patch []byte) (Dataset, error) {
	doc := stripJSAssignment(raw)
	if len(patch) > 0 {
		var err error
		if doc, err = applyPatch(doc, patch); err != nil {
			return Dataset{}, fmt.Errorf("unable to apply patch: %w", err)
		}
	}

	var ds Dataset
	if err := json.Unmarshal(doc, &ds); err != nil {
		return Dataset{}, err
	}

	ds.normalize()

	return ds, nil
}

// Patched returns a copy of the dataset with the patch applied.
func (d Dataset) Patched(patch []byte) (Dataset, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return Dataset{}, err
	}

	patched, err := DecodeDataset(doc, patch)
	if err != nil {
		return Dataset{}, err
	}

	// IDs are not part of the document, keep those we already had.
	for k := range patched.Matches {
		if k < len(d.Matches) && !d.Matches[k].ID.IsZero() &&
			sameTeams(d.Matches[k], patched.Matches[k]) {
			patched.Matches[k].ID = d.Matches[k].ID
		}
	}

	return patched, nil
}

// normalize fills the fields that are implied by the document structure.
func (d *Dataset) normalize() {
	if d.Players == nil {
		d.Players = map[string]Player{}
	}

	for id, p := range d.Players {
		p.SteamID = id
		d.Players[id] = p
	}

	for k := range d.Matches {
		if d.Matches[k].ID.IsZero() {
			d.Matches[k].ID = matchID(k, d.Matches[k])
		}
	}
}

// matchID derives a stable identifier from the position and content of a
// match so anchors survive re-renders of the same data.
func matchID(index int, m Match) util.UUIDAsBlob {
	content, err := json.Marshal(struct {
		Index int
		Match Match
	}{index, m})
	if err != nil {
		return util.NewUUIDAsBlob()
	}

	return util.NewUUIDAsBlobFromContent(content)
}

func sameTeams(a, b Match) bool {
	if len(a.Radiant) != len(b.Radiant) || len(a.Dire) != len(b.Dire) {
		return false
	}

	for k := range a.Radiant {
		if a.Radiant[k] != b.Radiant[k] {
			return false
		}
	}

	for k := range a.Dire {
		if a.Dire[k] != b.Dire[k] {
			return false
		}
	}

	return true
}

// Validate reports every inconsistency that would make the rendered output
// wrong. Mismatched counters are only logged.
func (d Dataset) Validate() error {
	var errs []error

	ids := make([]string, 0, len(d.Players))
	for id := range d.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := d.Players[id]
		if id == "" {
			errs = append(errs, fmt.Errorf("player with an empty ID"))
		}

		if p.Sigma < 0 {
			errs = append(errs, fmt.Errorf("player %s: negative sigma %f", id, p.Sigma))
		}

		if p.Games < 0 || p.Wins < 0 || p.Losses < 0 {
			errs = append(errs, fmt.Errorf("player %s: negative game counter", id))
		} else if p.Wins+p.Losses != p.Games {
			log.Printf(
				"warning: player %s: %d wins and %d losses for %d games",
				id, p.Wins, p.Losses, p.Games,
			)
		}
	}

	for k, m := range d.Matches {
		if !m.Winner.Valid() {
			errs = append(errs, fmt.Errorf("match #%d: invalid winner %q", k, m.Winner))
		}

		if m.Date.Time().IsZero() {
			log.Printf("warning: match #%d has no date", k)
		}
	}

	return util.ConcatErrors(errs)
}

// stripJSAssignment turns `const NAME = {...};` into `{...}`. Only the first
// JSON value is kept, comments before it and statements after it are
// dropped. Plain JSON is returned as-is.
func stripJSAssignment(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '{' || raw[0] == '[' {
		return raw
	}

	start := assignedObjectStart(raw)
	if start < 0 {
		return raw
	}

	var value json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(raw[start:])).Decode(&value); err != nil {
		// Let the caller report the decoding error on the whole value.
		return raw[start:]
	}

	return value
}

// assignedObjectStart returns the offset of the first `{` directly following
// an `=`, or of the first `{` at all if no assignment matches, or -1.
func assignedObjectStart(raw []byte) int {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '=' {
			continue
		}

		rest := bytes.TrimLeft(raw[i+1:], " \t\r\n")
		if len(rest) > 0 && rest[0] == '{' {
			return len(raw) - len(rest)
		}
	}

	return bytes.IndexByte(raw, '{')
}

// applyPatch applies a JSON patch (RFC 6902) if patch is an array, or a JSON
// merge patch (RFC 7386) otherwise.
func applyPatch(doc, patch []byte) ([]byte, error) {
	patch = bytes.TrimSpace(patch)
	if len(patch) > 0 && patch[0] == '[' {
		p, err := jsonpatch.DecodePatch(patch)
		if err != nil {
			return nil, err
		}

		return p.Apply(doc)
	}

	return jsonpatch.MergePatch(doc, patch)
}
