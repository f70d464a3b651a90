package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/validation"
)

type Stats struct {
	Total    int            `json:"total"`
	ByMethod map[string]int `json:"by_method"`
}

type Service struct {
	repo      Repository
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
	newID     func(prefix string) string
}

func NewService(repo Repository, validator *validation.Validator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With().Str("component", "registry").Logger(),
		now:       time.Now,
		newID:     models.NewID,
	}
}

// Validate runs the submission rules without touching the store.
func (s *Service) Validate(sub models.Submission) error {
	_, err := s.validator.ValidateSubmission(sub)
	return err
}

// Register validates sub and appends the resulting record. A rejected
// submission returns *validation.Errors and saves nothing.
func (s *Service) Register(ctx context.Context, sub models.Submission) (*models.Endpoint, error) {
	ep, err := s.validator.ValidateSubmission(sub)
	if err != nil {
		return nil, err
	}
	s.stamp(&ep)

	if err := s.repo.Append(ctx, ep); err != nil {
		return nil, fmt.Errorf("failed to save endpoint: %w", err)
	}

	s.log.Info().
		Str("id", ep.ID).
		Str("endpoint_id", ep.EndpointID).
		Str("method", string(ep.Method)).
		Int("test_cases", len(sub.TestCases)).
		Msg("endpoint registered")
	return &ep, nil
}

// Import registers every submission in one write, or none of them when any
// entry is rejected (*validation.BatchError).
func (s *Service) Import(ctx context.Context, subs []models.Submission) ([]models.Endpoint, error) {
	eps, err := s.validator.ValidateBatch(subs)
	if err != nil {
		return nil, err
	}
	if len(eps) == 0 {
		return eps, nil
	}

	for i := range eps {
		s.stamp(&eps[i])
	}

	if err := s.repo.AppendAll(ctx, eps); err != nil {
		return nil, fmt.Errorf("failed to save endpoints: %w", err)
	}

	s.log.Info().Int("count", len(eps)).Msg("endpoints imported")
	return eps, nil
}

// Restore appends exported records that are not stored yet, keeping their
// ids and creation times. Nothing is saved when any record is rejected
// (*validation.BatchError).
func (s *Service) Restore(ctx context.Context, eps []models.Endpoint) (int, error) {
	accepted, err := s.validator.ValidateRecords(eps)
	if err != nil {
		return 0, err
	}

	added, err := s.repo.AppendMissing(ctx, accepted)
	if err != nil {
		return 0, fmt.Errorf("failed to save endpoints: %w", err)
	}

	s.log.Info().
		Int("count", added).
		Int("skipped", len(accepted)-added).
		Msg("endpoints restored")
	return added, nil
}

func (s *Service) List(ctx context.Context) ([]models.Endpoint, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Endpoint, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("endpoint deleted")
	return nil
}

func (s *Service) EnsureSeeded(ctx context.Context) (bool, error) {
	return s.repo.EnsureSeeded(ctx)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	eps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByMethod: make(map[string]int, len(models.Methods))}
	for _, m := range models.Methods {
		stats.ByMethod[string(m)] = 0
	}
	for _, ep := range eps {
		stats.Total++
		stats.ByMethod[string(ep.Method)]++
	}
	return stats, nil
}

func (s *Service) stamp(ep *models.Endpoint) {
	ep.ID = s.newID(models.EndpointIDPrefix)
	ep.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
}
