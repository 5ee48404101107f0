package ports

import (
	"context"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// ProspectWithOwner is the read projection joining the assigned account's
// display identity onto the prospect row.
type ProspectWithOwner struct {
	domain.Prospect
	ResponsableUsername string `json:"responsable_username,omitempty"`
	ResponsableNom      string `json:"responsable_nom,omitempty"`
}

// CreateProspectInput carries all data needed to create a prospect.
// Status may be empty; the store defaults it to "nouveau".
type CreateProspectInput struct {
	Nomp        string
	Prenomp     string
	Telephone   string
	Email       string
	Adresse     string
	Type        domain.ProspectType
	Assignation int64
}

// ListProspectsFilter carries the optional list predicates. Zero values mean
// "no filter". The service overrides Assignation for non-administrator
// actors so a caller can never widen its own scope.
type ListProspectsFilter struct {
	Assignation int64
	Status      string
	Search      string
}

// ProspectService defines use-case operations for prospects. Every operation
// takes the acting account and enforces row-level scoping internally.
type ProspectService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateProspectInput) (int64, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*ProspectWithOwner, error)
	List(ctx context.Context, actor domain.Actor, filter ListProspectsFilter) ([]ProspectWithOwner, error)
	Update(ctx context.Context, actor domain.Actor, id int64, patch domain.ProspectPatch) error
	// Delete removes the prospect and all of its interactions.
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// ProspectRepository defines persistence operations for prospects.
type ProspectRepository interface {
	// Insert creates the prospect and returns its generated id.
	Insert(ctx context.Context, p *domain.Prospect) (int64, error)
	FindByID(ctx context.Context, id int64) (*ProspectWithOwner, error)
	// List returns prospects matching the filter, most recently updated
	// first.
	List(ctx context.Context, filter ListProspectsFilter) ([]ProspectWithOwner, error)
	// Update applies the patch and returns the number of rows affected.
	Update(ctx context.Context, id int64, patch domain.ProspectPatch) (int64, error)
	// DeleteCascade removes the prospect's interactions then the prospect
	// itself, in one transaction. It returns the number of interactions
	// removed and whether the prospect row existed.
	DeleteCascade(ctx context.Context, id int64) (interactions int64, found bool, err error)
}
