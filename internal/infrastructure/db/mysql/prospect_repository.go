package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ProspectRepository implements ports.ProspectRepository on MySQL.
type ProspectRepository struct {
	pool *Pool
	exec *Executor
}

func NewProspectRepository(pool *Pool, exec *Executor) *ProspectRepository {
	return &ProspectRepository{pool: pool, exec: exec}
}

// Insert creates the prospect. status, creation and date_update fall back to
// their column defaults (nouveau / now / now).
func (r *ProspectRepository) Insert(ctx context.Context, p *domain.Prospect) (int64, error) {
	const q = `INSERT INTO Prospect (nomp, prenomp, telephone, email, adresse, type, assignation)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.exec.Exec(ctx, q,
		p.Nomp, p.Prenomp, p.Telephone, p.Email, p.Adresse, string(p.Type), p.Assignation,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r *ProspectRepository) FindByID(ctx context.Context, id int64) (*ports.ProspectWithOwner, error) {
	const q = `SELECT p.id_prospect, p.nomp, p.prenomp, p.telephone, p.email, p.adresse,
	                  p.type, p.status, p.assignation, p.creation, p.date_update,
	                  a.username AS responsable_username, a.nom AS responsable_nom
	           FROM Prospect p
	           LEFT JOIN Account a ON p.assignation = a.id_compte
	           WHERE p.id_prospect = ?`
	rec, err := r.exec.QueryOne(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFoundf("prospect %d not found", id)
	}
	p := scanProspectWithOwner(rec)
	return &p, nil
}

// List appends one predicate per supplied filter value. Substring search
// spans the name, first name, email and phone columns; case sensitivity is a
// store-collation property.
func (r *ProspectRepository) List(ctx context.Context, filter ports.ListProspectsFilter) ([]ports.ProspectWithOwner, error) {
	q := `SELECT p.id_prospect, p.nomp, p.prenomp, p.telephone, p.email, p.adresse,
	             p.type, p.status, p.assignation, p.creation, p.date_update,
	             a.username AS responsable_username, a.nom AS responsable_nom
	      FROM Prospect p
	      LEFT JOIN Account a ON p.assignation = a.id_compte
	      WHERE 1 = 1`
	var args []any

	if filter.Assignation != 0 {
		q += " AND p.assignation = ?"
		args = append(args, filter.Assignation)
	}
	if filter.Status != "" {
		q += " AND p.status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q += " AND (p.nomp LIKE ? OR p.prenomp LIKE ? OR p.email LIKE ? OR p.telephone LIKE ?)"
		args = append(args, like, like, like, like)
	}

	q += " ORDER BY p.date_update DESC"

	recs, err := r.exec.QueryAll(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	prospects := make([]ports.ProspectWithOwner, len(recs))
	for i, rec := range recs {
		prospects[i] = scanProspectWithOwner(rec)
	}
	return prospects, nil
}

// Update builds the SET clause from the patch's populated fields and always
// advances date_update.
func (r *ProspectRepository) Update(ctx context.Context, id int64, patch domain.ProspectPatch) (int64, error) {
	var clauses []string
	var args []any
	if patch.Nomp != nil {
		clauses = append(clauses, "nomp = ?")
		args = append(args, *patch.Nomp)
	}
	if patch.Prenomp != nil {
		clauses = append(clauses, "prenomp = ?")
		args = append(args, *patch.Prenomp)
	}
	if patch.Telephone != nil {
		clauses = append(clauses, "telephone = ?")
		args = append(args, *patch.Telephone)
	}
	if patch.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.Adresse != nil {
		clauses = append(clauses, "adresse = ?")
		args = append(args, *patch.Adresse)
	}
	if patch.Type != nil {
		clauses = append(clauses, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Assignation != nil {
		clauses = append(clauses, "assignation = ?")
		args = append(args, *patch.Assignation)
	}
	if len(clauses) == 0 {
		return 0, nil
	}

	clauses = append(clauses, "date_update = NOW()")
	args = append(args, id)
	q := "UPDATE Prospect SET " + strings.Join(clauses, ", ") + " WHERE id_prospect = ?"
	res, err := r.exec.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// DeleteCascade removes the prospect's interactions, then the prospect, in
// one transaction: either both deletions land or neither does.
func (r *ProspectRepository) DeleteCascade(ctx context.Context, id int64) (int64, bool, error) {
	var interactions int64
	var found bool

	err := r.pool.WithinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM Interaction WHERE id_prospect = ?", id)
		if err != nil {
			return err
		}
		interactions, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, "DELETE FROM Prospect WHERE id_prospect = ?", id)
		if err != nil {
			return err
		}
		rows, _ := res.RowsAffected()
		found = rows > 0
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return interactions, found, nil
}

func scanProspectWithOwner(rec Record) ports.ProspectWithOwner {
	return ports.ProspectWithOwner{
		Prospect: domain.Prospect{
			ID:          rec.Int64("id_prospect"),
			Nomp:        rec.String("nomp"),
			Prenomp:     rec.String("prenomp"),
			Telephone:   rec.String("telephone"),
			Email:       rec.String("email"),
			Adresse:     rec.String("adresse"),
			Type:        domain.ProspectType(rec.String("type")),
			Status:      domain.ProspectStatus(rec.String("status")),
			Assignation: rec.Int64("assignation"),
			Creation:    rec.Time("creation"),
			DateUpdate:  rec.Time("date_update"),
		},
		ResponsableUsername: rec.String("responsable_username"),
		ResponsableNom:      rec.String("responsable_nom"),
	}
}

var _ ports.ProspectRepository = (*ProspectRepository)(nil)
