package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

var _ input.AdminUseCase = (*AdminService)(nil)

// AdminService backs the administration commands. Every call requires a
// signed-in administrator; the backend checks the role again.
type AdminService struct {
	api     output.AdminAPI
	session *SessionService
	now     func() time.Time
}

func NewAdminService(api output.AdminAPI, session *SessionService) *AdminService {
	return &AdminService{api: api, session: session, now: time.Now}
}

func (s *AdminService) requireAdmin() error {
	if s.session.Current() == nil {
		return domain.ErrNotAuthenticated
	}
	if !s.session.IsAdmin() {
		return domain.ErrNotAdmin
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]entities.User, 0, len(users))
	for _, u := range users {
		if filter.Match(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, patch entities.UserPatch) (*entities.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if patch.Role != nil && *patch.Role != domain.RoleAdmin && *patch.Role != domain.RoleUser {
		return nil, fmt.Errorf("%w: role %q", domain.ErrRequestFailed, *patch.Role)
	}
	return s.api.UpdateUser(ctx, id, patch)
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	return s.api.DeleteUser(ctx, id)
}

func (s *AdminService) ListEvents(ctx context.Context, status entities.EventStatusFilter) ([]entities.Event, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	events, err := s.api.ListAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	now := s.now()
	out := make([]entities.Event, 0, len(events))
	for _, e := range events {
		if status.Match(e, now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *AdminService) CreateEvent(ctx context.Context, draft entities.EventDraft) (string, error) {
	if err := s.requireAdmin(); err != nil {
		return "", err
	}
	if err := validateDraft(draft); err != nil {
		return "", err
	}
	return s.api.CreateEvent(ctx, draft)
}

func (s *AdminService) UpdateEvent(ctx context.Context, id int64, patch entities.EventPatch) (*entities.Event, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if patch.SeatsTotal != nil && *patch.SeatsTotal <= 0 {
		return nil, fmt.Errorf("%w: seats_total doit être > 0", domain.ErrInvalidEvent)
	}
	if patch.PurchasedCount != nil && *patch.PurchasedCount < 0 {
		return nil, fmt.Errorf("%w: purchased_count doit être >= 0", domain.ErrInvalidEvent)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: nom requis", domain.ErrInvalidEvent)
	}
	return s.api.UpdateEvent(ctx, id, patch)
}

func validateDraft(d entities.EventDraft) error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: nom requis", domain.ErrInvalidEvent)
	case d.StartsAt.IsZero():
		return fmt.Errorf("%w: date de début requise", domain.ErrInvalidEvent)
	case d.SeatsTotal <= 0:
		return fmt.Errorf("%w: seats_total doit être > 0", domain.ErrInvalidEvent)
	case d.PurchasedCount < 0:
		return fmt.Errorf("%w: purchased_count doit être >= 0", domain.ErrInvalidEvent)
	case d.Price < 0:
		return fmt.Errorf("%w: prix négatif", domain.ErrInvalidEvent)
	}
	return nil
}
