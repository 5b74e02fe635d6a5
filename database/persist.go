package database

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// snapshot is the on-disk representation of the store.
type snapshot struct {
	Sizes    Sizes               `json:"sizes"`
	Sections map[Section][]uint16 `json:"sections"`
}

// Save writes the full database contents to path as JSON.
func (db *Database) Save(path string) error {
	snap := snapshot{
		Sizes:    db.sizes,
		Sections: make(map[Section][]uint16, sectionCount),
	}
	for s := Section(0); s < sectionCount; s++ {
		snap.Sections[s] = db.sections[s]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads a previously saved database. Sections are clipped or padded to
// the configured sizes, so a layout change between runs never leaves a
// section mis-sized.
func (db *Database) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	for s := Section(0); s < sectionCount; s++ {
		stored := snap.Sections[s]
		for i := range db.sections[s] {
			if i < len(stored) {
				db.sections[s][i] = stored[i]
			}
		}
	}

	return nil
}
