package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/storage"
)

const DefaultKey = "endpoints"

// Repository is the record store contract. Every mutation rewrites the whole
// collection.
type Repository interface {
	List(ctx context.Context) ([]models.Endpoint, error)
	Get(ctx context.Context, id string) (*models.Endpoint, error)
	Append(ctx context.Context, ep models.Endpoint) error
	AppendAll(ctx context.Context, eps []models.Endpoint) error
	AppendMissing(ctx context.Context, eps []models.Endpoint) (int, error)
	Remove(ctx context.Context, id string) error
	EnsureSeeded(ctx context.Context) (bool, error)
}

// Store keeps the ordered endpoint collection as one JSON array under a
// single slot key.
type Store struct {
	slot storage.Storage
	key  string
	log  zerolog.Logger

	// serializes read-modify-write within the process; other processes
	// sharing the slot still race, last write wins
	mu sync.Mutex
}

func NewStore(slot storage.Storage, key string, log zerolog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		slot: slot,
		key:  key,
		log:  log.With().Str("component", "store").Str("key", key).Logger(),
	}
}

func (s *Store) List(ctx context.Context) ([]models.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eps, _, err := s.load(ctx)
	return eps, err
}

func (s *Store) Get(ctx context.Context, id string) (*models.Endpoint, error) {
	eps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range eps {
		if eps[i].ID == id {
			return &eps[i], nil
		}
	}
	return nil, nil
}

func (s *Store) Append(ctx context.Context, ep models.Endpoint) error {
	return s.AppendAll(ctx, []models.Endpoint{ep})
}

func (s *Store) AppendAll(ctx context.Context, eps []models.Endpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append(current, eps...))
}

// AppendMissing appends the records whose id is not stored yet and reports
// how many were added. Later duplicates within eps are skipped as well.
func (s *Store) AppendMissing(ctx context.Context, eps []models.Endpoint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(current)+len(eps))
	for _, ep := range current {
		seen[ep.ID] = struct{}{}
	}

	added := 0
	for _, ep := range eps {
		if _, ok := seen[ep.ID]; ok {
			continue
		}
		seen[ep.ID] = struct{}{}
		current = append(current, ep)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.save(ctx, current)
}

// Remove drops the record with the given id. An unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Endpoint, 0, len(current))
	for _, ep := range current {
		if ep.ID != id {
			kept = append(kept, ep)
		}
	}
	if len(kept) == len(current) {
		s.log.Debug().Str("id", id).Msg("remove: no such endpoint")
		return nil
	}
	return s.save(ctx, kept)
}

// EnsureSeeded writes the seed records when the slot has never been written
// and reports whether it did. An existing payload, even an empty or
// unreadable one, is left alone.
func (s *Store) EnsureSeeded(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	if err := s.save(ctx, SeedEndpoints()); err != nil {
		return false, err
	}
	s.log.Info().Int("count", len(SeedEndpoints())).Msg("seeded endpoint store")
	return true, nil
}

func (s *Store) load(ctx context.Context) ([]models.Endpoint, bool, error) {
	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read endpoints: %w", err)
	}
	if raw == nil {
		return []models.Endpoint{}, false, nil
	}

	var eps []models.Endpoint
	if err := json.Unmarshal(raw, &eps); err != nil {
		s.log.Warn().Err(err).Int("bytes", len(raw)).Msg("persisted endpoints unreadable, treating as empty")
		return []models.Endpoint{}, true, nil
	}
	if eps == nil {
		eps = []models.Endpoint{}
	}
	return eps, true, nil
}

func (s *Store) save(ctx context.Context, eps []models.Endpoint) error {
	data, err := json.Marshal(eps)
	if err != nil {
		return fmt.Errorf("failed to encode endpoints: %w", err)
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write endpoints: %w", err)
	}
	return nil
}
