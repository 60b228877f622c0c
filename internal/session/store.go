// Package session owns "who is logged in": the persisted token pair and
// the in-memory user resolved from it. It is the single writer of the
// stored credentials; the only other trigger is the client's global 401
// handler, which calls Clear through the manager.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/models"
)

const stateFile = "session.json"

// Store persists the token pair under the state directory, standing in
// for the browser's local storage. Reads and writes are synchronous.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates the state directory if needed and returns a store
// writing to session.json inside it.
func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	return &Store{
		path:   filepath.Join(dir, stateFile),
		logger: logger.With().Str("component", "session_store").Logger(),
	}, nil
}

// Load reads the stored token pair. A missing or unreadable file yields
// an empty pair, never an error: an absent session is the normal cold
// start.
func (s *Store) Load() models.TokenPair {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Msg("failed to read session file")
		}
		return models.TokenPair{}
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt session file, discarding")
		return models.TokenPair{}
	}
	return pair
}

// Save writes both tokens, readable by the owner only.
func (s *Store) Save(pair models.TokenPair) error {
	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored tokens. Clearing an absent session is a no-op.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(err).Msg("failed to remove session file")
	}
}
