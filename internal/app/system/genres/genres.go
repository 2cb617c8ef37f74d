// Package genres holds the curated genre catalog used to tag sessions and
// claimed recordings. Genres are referenced by stable string ids (e.g.
// "african", "ambient") rather than ObjectIDs.
package genres

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed genredata/genres.json
var fs embed.FS

// Genre is one catalog entry.
type Genre struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	loadOnce sync.Once
	list     []Genre
	byID     map[string]Genre
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		data, err := fs.ReadFile("genredata/genres.json")
		if err != nil {
			loadErr = err
			return
		}
		var l []Genre
		if err := json.Unmarshal(data, &l); err != nil {
			loadErr = err
			return
		}
		list = l
		byID = make(map[string]Genre, len(l))
		for _, g := range l {
			byID[g.ID] = g
		}
	})
}

// Load is optional: call it at startup to fail fast on a broken catalog.
func Load() error {
	load()
	return loadErr
}

// All returns the catalog in a stable order.
func All() ([]Genre, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	return list, nil
}

// Valid reports whether id names a catalog genre. The empty id is valid:
// sessions without a genre are allowed.
func Valid(id string) bool {
	if id == "" {
		return true
	}
	load()
	if loadErr != nil {
		return false
	}
	_, ok := byID[id]
	return ok
}

// Label returns the human-friendly label for an id, or the id itself if
// unknown.
func Label(id string) string {
	load()
	if loadErr != nil {
		return id
	}
	if g, ok := byID[id]; ok && g.Label != "" {
		return g.Label
	}
	return id
}
