package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// InteractionService implements append-only contact history. Every entry is
// tied to a prospect (strong reference, removed on cascade) and an author
// account.
type InteractionService struct {
	repo      ports.InteractionRepository
	prospects ports.ProspectRepository
	// recomputeTimestamp controls whether deleting an interaction resets the
	// parent prospect's date_update from the remaining history. Default off:
	// the parent keeps its timestamp, matching creation-only touch
	// semantics.
	recomputeTimestamp bool
	log                zerolog.Logger
}

func NewInteractionService(
	repo ports.InteractionRepository,
	prospects ports.ProspectRepository,
	recomputeTimestamp bool,
	log zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		repo:               repo,
		prospects:          prospects,
		recomputeTimestamp: recomputeTimestamp,
		log:                log,
	}
}

// Create validates the type enumeration, then inserts the interaction and
// advances the parent prospect's date_update in a single transaction. The
// author is always the acting account.
func (s *InteractionService) Create(ctx context.Context, actor domain.Actor, in ports.CreateInteractionInput) error {
	if !in.Type.Valid() {
		return domain.Validationf("invalid interaction type %q, must be one of: %s", in.Type, domain.InteractionTypeNames())
	}

	if err := s.authorizeProspect(ctx, actor, in.ProspectID); err != nil {
		return err
	}

	interaction := &domain.Interaction{
		ProspectID: in.ProspectID,
		CompteID:   actor.AccountID,
		Type:       in.Type,
		Note:       in.Note,
	}
	if err := s.repo.InsertAndTouchProspect(ctx, interaction); err != nil {
		return err
	}

	s.log.Info().
		Int64("id_prospect", in.ProspectID).
		Int64("id_compte", actor.AccountID).
		Str("type", string(in.Type)).
		Msg("interaction recorded")
	return nil
}

// ListByProspect returns the prospect's history, most recent first, with the
// author's display identity joined on.
func (s *InteractionService) ListByProspect(ctx context.Context, actor domain.Actor, prospectID int64) ([]ports.InteractionWithAuthor, error) {
	if err := s.authorizeProspect(ctx, actor, prospectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProspect(ctx, prospectID)
}

// Delete removes one interaction. Whether the parent prospect's date_update
// is recomputed from the remaining history is a configured policy.
func (s *InteractionService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	interaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeProspect(ctx, actor, interaction.ProspectID); err != nil {
		return err
	}

	rows, err := s.repo.Delete(ctx, id, s.recomputeTimestamp)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("interaction %d not found", id)
	}

	s.log.Info().Int64("id_interaction", id).Bool("recompute", s.recomputeTimestamp).Msg("interaction deleted")
	return nil
}

// authorizeProspect verifies the actor may touch history belonging to the
// given prospect.
func (s *InteractionService) authorizeProspect(ctx context.Context, actor domain.Actor, prospectID int64) error {
	if actor.IsAdmin() {
		return nil
	}
	p, err := s.prospects.FindByID(ctx, prospectID)
	if err != nil {
		return err
	}
	if p.Assignation != actor.AccountID {
		return domain.ErrForbidden
	}
	return nil
}
