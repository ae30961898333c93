// Package favorites implements the persisted favorites set: full
// character snapshots, at most one per identifier, mirrored to a single
// JSON document on every mutation.
//
// A snapshot captures the entity as it was when favorited and is never
// refreshed from upstream. Membership checks are synchronous and always
// reflect the latest completed mutation; unlike the query cache there
// is no staleness window because there is no network component here.
package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// FileName is the stable namespace key the set is persisted under,
// carried over from the browser build of this client.
const FileName = "rick-and-morty-favorites.json"

// DefaultPath returns the default location of the favorites file inside
// the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapIO("locate", "user config directory", err)
	}
	return filepath.Join(dir, "rick-and-morty", FileName), nil
}

// Store is the favorites set. Safe for concurrent use; it lives for the
// life of the process and needs no teardown.
type Store struct {
	mu     sync.Mutex
	path   string // empty means in-memory only
	items  []characters.Character
	member map[int]bool
	logger *zerolog.Logger
}

// Open loads the favorites set persisted at path, creating an empty set
// when the file is absent. A malformed file must not prevent startup:
// it is logged and treated as empty, letting the user rebuild.
func Open(path string, logger *zerolog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Store{
		path:   path,
		member: make(map[int]bool),
		logger: logger,
	}
	s.load()
	return s, nil
}

// NewInMemory creates a favorites set with no durable backing,
// for tests and ephemeral use.
func NewInMemory(logger *zerolog.Logger) *Store {
	s, _ := Open("", logger)
	return s
}

// Add appends a character snapshot to the set. Adding an identifier
// that is already present is a no-op, not an error. The mutation is
// mirrored to disk before Add returns; on a write failure the in-memory
// state stays authoritative and the error is surfaced.
func (s *Store) Add(c characters.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.member[c.ID.Int()] {
		return nil
	}
	s.items = append(s.items, c)
	s.member[c.ID.Int()] = true
	return s.persistLocked()
}

// Remove deletes the snapshot with the given identifier. Removing an
// absent identifier is a no-op.
func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.member[id] {
		return nil
	}
	delete(s.member, id)
	for i, c := range s.items {
		if c.ID.Int() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s.persistLocked()
}

// IsFavorite reports membership. Pure query, no side effects.
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.member[id]
}

// List returns the snapshots in insertion order.
func (s *Store) List() []characters.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]characters.Character, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IDs returns the favorited identifiers in insertion order.
func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, len(s.items))
	for i, c := range s.items {
		ids[i] = c.ID.Int()
	}
	return ids
}

// load deserializes the persisted set. Unknown fields are ignored and
// missing optional fields tolerated, so older files keep working.
func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Could not read favorites file, starting empty")
		}
		return
	}

	var items []characters.Character
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Malformed favorites file, starting empty")
		return
	}

	for _, c := range items {
		if s.member[c.ID.Int()] {
			continue
		}
		s.items = append(s.items, c)
		s.member[c.ID.Int()] = true
	}
}

// persistLocked writes the set to disk atomically (temp file + rename).
// Callers must hold s.mu.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return errors.WrapParse("json", "favorites", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", "favorites directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return errors.WrapIO("create", "favorites temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", "favorites file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("close", "favorites file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("replace", "favorites file", err)
	}
	return nil
}
