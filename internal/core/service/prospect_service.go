package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ProspectService implements prospect CRUD with row-level scoping: a
// non-administrator actor only ever sees and mutates prospects assigned to
// its own account, regardless of the filters it passes.
type ProspectService struct {
	repo ports.ProspectRepository
	log  zerolog.Logger
}

func NewProspectService(repo ports.ProspectRepository, log zerolog.Logger) *ProspectService {
	return &ProspectService{repo: repo, log: log}
}

// Create validates the type enumeration and inserts the prospect. Status is
// left to the store's default ("nouveau"). Non-administrators may only
// assign prospects to themselves; an omitted assignation defaults to the
// actor's own account.
func (s *ProspectService) Create(ctx context.Context, actor domain.Actor, in ports.CreateProspectInput) (int64, error) {
	if !in.Type.Valid() {
		return 0, domain.Validationf("invalid prospect type %q, must be one of: %s", in.Type, domain.ProspectTypeNames())
	}

	assignation := in.Assignation
	if !actor.IsAdmin() {
		if assignation == 0 {
			assignation = actor.AccountID
		} else if assignation != actor.AccountID {
			return 0, domain.ErrForbidden
		}
	}
	if assignation == 0 {
		return 0, domain.Validationf("assignation is required")
	}

	p := &domain.Prospect{
		Nomp:        in.Nomp,
		Prenomp:     in.Prenomp,
		Telephone:   in.Telephone,
		Email:       in.Email,
		Adresse:     in.Adresse,
		Type:        in.Type,
		Assignation: assignation,
	}
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("id_prospect", id).Str("type", string(in.Type)).Int64("assignation", assignation).Msg("prospect created")
	return id, nil
}

func (s *ProspectService) GetByID(ctx context.Context, actor domain.Actor, id int64) (*ports.ProspectWithOwner, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && p.Assignation != actor.AccountID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// List builds a conjunctive filter from the supplied predicates. An invalid
// status filter is ignored rather than rejected. Results come back most
// recently updated first.
func (s *ProspectService) List(ctx context.Context, actor domain.Actor, filter ports.ListProspectsFilter) ([]ports.ProspectWithOwner, error) {
	if !actor.IsAdmin() {
		// Scope is pinned server-side; the caller's filter cannot widen it.
		filter.Assignation = actor.AccountID
	}
	if filter.Status != "" && !domain.ProspectStatus(filter.Status).Valid() {
		filter.Status = ""
	}
	return s.repo.List(ctx, filter)
}

// Update applies a typed patch. Enum fields are re-validated per field; an
// invalid value short-circuits the whole update with no partial application.
func (s *ProspectService) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.ProspectPatch) error {
	if patch.IsEmpty() {
		return domain.Validationf("nothing to update")
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return domain.Validationf("invalid prospect type %q, must be one of: %s", *patch.Type, domain.ProspectTypeNames())
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Validationf("invalid prospect status %q, must be one of: %s", *patch.Status, domain.ProspectStatusNames())
	}

	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if !actor.IsAdmin() && patch.Assignation != nil && *patch.Assignation != actor.AccountID {
		return domain.ErrForbidden
	}

	rows, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("prospect %d not found", id)
	}
	return nil
}

// Delete removes the prospect's interactions, then the prospect, in one
// transaction.
func (s *ProspectService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	interactions, found, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFoundf("prospect %d not found", id)
	}

	s.log.Info().Int64("id_prospect", id).Int64("interactions_removed", interactions).Msg("prospect deleted")
	return nil
}

// authorize verifies that the actor owns the targeted row. Administrators
// skip the lookup entirely.
func (s *ProspectService) authorize(ctx context.Context, actor domain.Actor, id int64) error {
	if actor.IsAdmin() {
		return nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Assignation != actor.AccountID {
		return domain.ErrForbidden
	}
	return nil
}
