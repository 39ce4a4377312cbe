package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Store persists the watchlist as a flat JSON object mapping ticker
// symbols to signed alert thresholds. The file is the source of truth:
// the monitor loop and the command handlers both reload it before
// acting, so external edits take effect without a restart.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the persisted watchlist. A missing file is not an error:
// an empty watchlist is created and persisted. Any other failure is
// logged and degrades to an empty map.
func (s *Store) Load() map[string]float64 {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		log.Infof("no watchlist at %s, creating an empty one", s.Path)
		s.Save(map[string]float64{})
		return map[string]float64{}
	}
	if err != nil {
		log.Errorf("failed to read watchlist %s: %v", s.Path, err)
		return map[string]float64{}
	}

	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Errorf("failed to parse watchlist %s: %v", s.Path, err)
		return map[string]float64{}
	}

	entries := make(map[string]float64, len(raw))
	for symbol, value := range raw {
		threshold, err := value.Float64()
		if err != nil {
			log.Errorf("non-numeric threshold for %s in %s: %v", symbol, s.Path, err)
			continue
		}
		entries[symbol] = threshold
	}
	return entries
}

// Save overwrites the watchlist file with the given entries. The write
// goes through a temp file plus rename, which is atomic enough for
// single-process use. Returns false and logs on failure, never errors
// out to the caller.
func (s *Store) Save(entries map[string]float64) bool {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Errorf("failed to encode watchlist: %v", err)
		return false
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".watchlist-*")
	if err != nil {
		log.Errorf("failed to create temp watchlist file: %v", err)
		return false
	}

	if _, err := tmp.Write(data); err != nil {
		log.Errorf("failed to write watchlist: %v", err)
		tmp.Close()
		os.Remove(tmp.Name())
		return false
	}
	if err := tmp.Close(); err != nil {
		log.Errorf("failed to close temp watchlist file: %v", err)
		os.Remove(tmp.Name())
		return false
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		log.Errorf("failed to replace watchlist %s: %v", s.Path, err)
		os.Remove(tmp.Name())
		return false
	}
	return true
}

// Set upserts a single entry, read-fresh then write-back. Last writer
// wins, which is acceptable at this write frequency.
func (s *Store) Set(symbol string, threshold float64) bool {
	entries := s.Load()
	entries[symbol] = threshold
	return s.Save(entries)
}

// SetAll overwrites the threshold of every existing entry.
func (s *Store) SetAll(threshold float64) bool {
	entries := s.Load()
	for symbol := range entries {
		entries[symbol] = threshold
	}
	return s.Save(entries)
}
