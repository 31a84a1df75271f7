// Package session persists lightweight editor state between runs: the last
// opened map, the active brush, and tool settings. The state is a small
// JSON document; losing it is never fatal, so every reader degrades to
// defaults.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// State is the persisted editor session.
type State struct {
	MapPath   string
	BrushName string
	Variation int
	FloorZ    int
}

// Default returns the state of a fresh session.
func Default() State {
	return State{FloorZ: 7}
}

// Load reads session state from path. A missing or unreadable file yields
// the default state; only a present-but-invalid document is an error.
func Load(path string) (State, error) {
	st := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return st, nil
	}
	if !gjson.ValidBytes(data) {
		return st, fmt.Errorf("session %s: not valid JSON", path)
	}

	root := gjson.ParseBytes(data)
	if v := root.Get("map.path"); v.Exists() {
		st.MapPath = v.String()
	}
	if v := root.Get("brush.name"); v.Exists() {
		st.BrushName = v.String()
	}
	if v := root.Get("brush.variation"); v.Exists() {
		st.Variation = int(v.Int())
	}
	if v := root.Get("view.floor"); v.Exists() {
		st.FloorZ = int(v.Int())
	}
	return st, nil
}

// Save writes the state to path atomically: the document is built next to
// the target and renamed over it, so a crash never leaves a torn file.
func Save(path string, st State) error {
	doc := "{}"
	var err error
	for _, set := range []struct {
		key   string
		value any
	}{
		{"map.path", st.MapPath},
		{"brush.name", st.BrushName},
		{"brush.variation", st.Variation},
		{"view.floor", st.FloorZ},
	} {
		doc, err = sjson.Set(doc, set.key, set.value)
		if err != nil {
			return fmt.Errorf("building session document: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}
