package report

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// WatchConfig configures reporting for a single watched package.
type WatchConfig struct {
	// Notify marks the package for prominent display in the report.
	Notify bool `toml:"notify,omitempty"`
	// Note is free-form text shown next to the package.
	Note string `toml:"note,omitempty"`
}

// Watchlist maps "category/package" names to their watch settings.
type Watchlist struct {
	Packages map[string]WatchConfig
}

// watchlistFile is the on-disk TOML shape, where each [category/package]
// section is a top-level key.
type watchlistFile map[string]WatchConfig

// LoadWatchlist reads a watchlist.toml file. A missing file is not an
// error: watching packages is optional, so an empty list is returned.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Watchlist{Packages: map[string]WatchConfig{}}, nil
		}
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}

	var file watchlistFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}

	list := &Watchlist{Packages: make(map[string]WatchConfig, len(file))}
	for pkg, cfg := range file {
		list.Packages[pkg] = cfg
	}
	return list, nil
}

// Match looks up a package name in the watchlist.
func (w *Watchlist) Match(name string) (WatchConfig, bool) {
	cfg, ok := w.Packages[name]
	return cfg, ok
}

// Len returns the number of watched packages.
func (w *Watchlist) Len() int {
	return len(w.Packages)
}
