package ergast

import (
	"os"
	"path/filepath"
	"time"
)

// responseCache stores raw API payloads on disk so repeated refreshes do not
// hammer the provider. Entries with ttl == 0 never expire (race results are
// immutable once the race is done); schedule entries expire so new rounds
// show up.
type responseCache struct {
	dir string
}

func newResponseCache(dir string) (*responseCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &responseCache{dir: dir}, nil
}

func (rc *responseCache) get(key string, ttl time.Duration) ([]byte, bool) {
	path := filepath.Join(rc.dir, key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if ttl > 0 && time.Since(info.ModTime()) > ttl {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (rc *responseCache) put(key string, body []byte) error {
	return os.WriteFile(filepath.Join(rc.dir, key), body, 0644)
}
