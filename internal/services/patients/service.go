package patients

import (
	"context"
	"errors"
	"log/slog"

	"shifa-clinic/internal/services/auth"
)

// ErrListPatients is returned when the patient listing query fails.
var ErrListPatients = errors.New("failed to list patients")

// Repository defines the repository operations the patients service needs.
// The mongo users repository satisfies it.
type Repository interface {
	ListByRole(ctx context.Context, role string) ([]*auth.User, error)
}

// Service handles patient listing business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new patients service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List returns every registered patient, most recently registered first.
// The repository projection strips password hashes, and an empty clinic
// yields an empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]*auth.User, error) {
	users, err := s.repo.ListByRole(ctx, auth.RolePatient)
	if err != nil {
		s.log.Error(ErrListPatients.Error(), "error", err)
		return nil, ErrListPatients
	}

	if users == nil {
		users = make([]*auth.User, 0)
	}

	return users, nil
}
