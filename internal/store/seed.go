package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"routedash/internal/domain"
)

type seedFile struct {
	Locations []domain.Location `json:"locations"`
	Routes    []domain.Route    `json:"routes"`
}

// SeedFromJSON loads demo locations and routes for local runs. A missing seed
// file is not an error; the store simply starts empty.
func SeedFromJSON(s *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("seed: parse %q: %w", path, err)
	}

	for _, loc := range seed.Locations {
		if loc.ID == "" {
			return fmt.Errorf("seed: location with empty id in %q", path)
		}
		s.UpsertLocation(loc)
	}
	for i := range seed.Routes {
		r := seed.Routes[i]
		if r.ID == "" {
			return fmt.Errorf("seed: route with empty id in %q", path)
		}
		s.UpsertRoute(&r)
	}
	return nil
}
