package back

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names maps steam IDs to display names, names are managed outside of the
// rating process.
type Names map[string]string

// LoadNamesFile reads a name lookup table from a JSON, JS or YAML file.
func LoadNamesFile(path string) (Names, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ret := Names{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &ret)
	default:
		err = json.Unmarshal(stripJSAssignment(raw), &ret)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read names %s: %w", path, err)
	}

	return ret, nil
}

// Lookup returns the display name of a player and whether one was found.
func (n Names) Lookup(steamID string) (string, bool) {
	name, ok := n[steamID]
	if !ok || name == "" {
		return "", false
	}

	return name, true
}

// Merge returns a new table with the entries of both, other takes precedence.
func (n Names) Merge(other Names) Names {
	ret := make(Names, len(n)+len(other))
	for k, v := range n {
		ret[k] = v
	}
	for k, v := range other {
		ret[k] = v
	}

	return ret
}
