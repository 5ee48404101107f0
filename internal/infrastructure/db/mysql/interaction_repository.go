package mysql

import (
	"context"
	"database/sql"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// InteractionRepository implements ports.InteractionRepository on MySQL.
type InteractionRepository struct {
	pool *Pool
	exec *Executor
}

func NewInteractionRepository(pool *Pool, exec *Executor) *InteractionRepository {
	return &InteractionRepository{pool: pool, exec: exec}
}

// InsertAndTouchProspect records the interaction and advances the parent
// prospect's date_update, both in one transaction. date_interaction is set
// by the server clock at insert and is immutable afterwards.
func (r *InteractionRepository) InsertAndTouchProspect(ctx context.Context, in *domain.Interaction) error {
	return r.pool.WithinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO Interaction (id_prospect, id_compte, type, note, date_interaction)
			 VALUES (?, ?, ?, ?, NOW())`,
			in.ProspectID, in.CompteID, string(in.Type), in.Note,
		)
		if err != nil {
			return err
		}
		in.ID, _ = res.LastInsertId()

		_, err = tx.ExecContext(ctx,
			"UPDATE Prospect SET date_update = NOW() WHERE id_prospect = ?", in.ProspectID)
		return err
	})
}

func (r *InteractionRepository) FindByID(ctx context.Context, id int64) (*domain.Interaction, error) {
	const q = `SELECT id_interaction, id_prospect, id_compte, type, note, date_interaction
	           FROM Interaction WHERE id_interaction = ?`
	rec, err := r.exec.QueryOne(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFoundf("interaction %d not found", id)
	}
	return &domain.Interaction{
		ID:              rec.Int64("id_interaction"),
		ProspectID:      rec.Int64("id_prospect"),
		CompteID:        rec.Int64("id_compte"),
		Type:            domain.InteractionType(rec.String("type")),
		Note:            rec.String("note"),
		DateInteraction: rec.Time("date_interaction"),
	}, nil
}

// ListByProspect returns the history most recent first, joining the author's
// display identity.
func (r *InteractionRepository) ListByProspect(ctx context.Context, prospectID int64) ([]ports.InteractionWithAuthor, error) {
	const q = `SELECT i.id_interaction, i.id_prospect, i.id_compte, i.type, i.note, i.date_interaction,
	                  a.username AS createur_username, a.nom AS createur_nom, a.prenom AS createur_prenom
	           FROM Interaction i
	           JOIN Account a ON i.id_compte = a.id_compte
	           WHERE i.id_prospect = ?
	           ORDER BY i.date_interaction DESC`
	recs, err := r.exec.QueryAll(ctx, q, prospectID)
	if err != nil {
		return nil, err
	}

	interactions := make([]ports.InteractionWithAuthor, len(recs))
	for i, rec := range recs {
		interactions[i] = ports.InteractionWithAuthor{
			Interaction: domain.Interaction{
				ID:              rec.Int64("id_interaction"),
				ProspectID:      rec.Int64("id_prospect"),
				CompteID:        rec.Int64("id_compte"),
				Type:            domain.InteractionType(rec.String("type")),
				Note:            rec.String("note"),
				DateInteraction: rec.Time("date_interaction"),
			},
			CreateurUsername: rec.String("createur_username"),
			CreateurNom:      rec.String("createur_nom"),
			CreateurPrenom:   rec.String("createur_prenom"),
		}
	}
	return interactions, nil
}

// Delete removes one interaction. With recompute enabled the parent
// prospect's date_update is reset to the most recent remaining interaction,
// falling back to the prospect's creation date when the history is empty,
// all inside one transaction. Without it the parent keeps its timestamp.
func (r *InteractionRepository) Delete(ctx context.Context, id int64, recompute bool) (int64, error) {
	if !recompute {
		res, err := r.exec.Exec(ctx, "DELETE FROM Interaction WHERE id_interaction = ?", id)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected, nil
	}

	var rows int64
	err := r.pool.WithinTx(ctx, func(tx *sql.Tx) error {
		var prospectID int64
		err := tx.QueryRowContext(ctx,
			"SELECT id_prospect FROM Interaction WHERE id_interaction = ?", id).Scan(&prospectID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM Interaction WHERE id_interaction = ?", id)
		if err != nil {
			return err
		}
		rows, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx,
			`UPDATE Prospect
			 SET date_update = COALESCE(
			     (SELECT MAX(date_interaction) FROM Interaction WHERE id_prospect = ?),
			     creation)
			 WHERE id_prospect = ?`,
			prospectID, prospectID,
		)
		return err
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

var _ ports.InteractionRepository = (*InteractionRepository)(nil)
