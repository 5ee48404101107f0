package ports

import (
	"context"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// InteractionWithAuthor joins the author account's display identity onto a
// history entry.
type InteractionWithAuthor struct {
	domain.Interaction
	CreateurUsername string `json:"createur_username"`
	CreateurNom      string `json:"createur_nom"`
	CreateurPrenom   string `json:"createur_prenom"`
}

// CreateInteractionInput carries all data needed to record an interaction.
// CompteID is taken from the actor, never from the request body.
type CreateInteractionInput struct {
	ProspectID int64
	Type       domain.InteractionType
	Note       string
}

// InteractionService defines use-case operations for contact history.
type InteractionService interface {
	// Create records the interaction and advances the parent prospect's
	// date_update, both within one transaction.
	Create(ctx context.Context, actor domain.Actor, input CreateInteractionInput) error
	ListByProspect(ctx context.Context, actor domain.Actor, prospectID int64) ([]InteractionWithAuthor, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// InteractionRepository defines persistence operations for interactions.
type InteractionRepository interface {
	// InsertAndTouchProspect inserts the interaction and sets the parent
	// prospect's date_update to now, transactionally. date_interaction is
	// assigned by the store.
	InsertAndTouchProspect(ctx context.Context, in *domain.Interaction) error
	FindByID(ctx context.Context, id int64) (*domain.Interaction, error)
	ListByProspect(ctx context.Context, prospectID int64) ([]InteractionWithAuthor, error)
	// Delete removes the interaction. When recompute is true the parent
	// prospect's date_update is reset to the most recent remaining
	// interaction's timestamp in the same transaction; otherwise the parent
	// is left untouched.
	Delete(ctx context.Context, id int64, recompute bool) (int64, error)
}
