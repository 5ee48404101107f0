package mysql

import (
	"context"
	"strings"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// accountProjection is the read shape of an account. The password hash is
// deliberately excluded; only the authentication lookup selects it.
const accountProjection = "id_compte, nom, prenom, email, username, type_compte, date_creation"

// AccountRepository implements ports.AccountRepository on MySQL.
type AccountRepository struct {
	exec *Executor
}

func NewAccountRepository(exec *Executor) *AccountRepository {
	return &AccountRepository{exec: exec}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	const q = `INSERT INTO Account (nom, prenom, email, username, password, type_compte)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.exec.Exec(ctx, q,
		account.Nom, account.Prenom, account.Email,
		account.Username, account.PasswordHash, string(account.TypeCompte),
	)
	if err != nil {
		return err
	}
	account.ID = res.LastInsertID
	return nil
}

// FindByUsername is the only projection that includes the password hash; it
// exists solely to serve authentication.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const q = `SELECT id_compte, nom, prenom, email, username, password, type_compte, date_creation
	           FROM Account WHERE username = ?`
	rec, err := r.exec.QueryOne(ctx, q, username)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFoundf("account %q not found", username)
	}
	account := scanAccount(rec)
	account.PasswordHash = rec.String("password")
	return &account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	rec, err := r.exec.QueryOne(ctx, "SELECT "+accountProjection+" FROM Account WHERE id_compte = ?", id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFoundf("account %d not found", id)
	}
	account := scanAccount(rec)
	return &account, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	recs, err := r.exec.QueryAll(ctx, "SELECT "+accountProjection+" FROM Account ORDER BY nom, prenom")
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, len(recs))
	for i, rec := range recs {
		accounts[i] = scanAccount(rec)
	}
	return accounts, nil
}

// UpdateInfo builds the SET clause from the patch's populated fields only.
func (r *AccountRepository) UpdateInfo(ctx context.Context, id int64, patch domain.AccountPatch) (int64, error) {
	var clauses []string
	var args []any
	if patch.Nom != nil {
		clauses = append(clauses, "nom = ?")
		args = append(args, *patch.Nom)
	}
	if patch.Prenom != nil {
		clauses = append(clauses, "prenom = ?")
		args = append(args, *patch.Prenom)
	}
	if patch.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.Username != nil {
		clauses = append(clauses, "username = ?")
		args = append(args, *patch.Username)
	}
	if len(clauses) == 0 {
		return 0, nil
	}

	args = append(args, id)
	q := "UPDATE Account SET " + strings.Join(clauses, ", ") + " WHERE id_compte = ?"
	res, err := r.exec.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	res, err := r.exec.Exec(ctx, "UPDATE Account SET password = ? WHERE id_compte = ?", passwordHash, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.exec.Exec(ctx, "DELETE FROM Account WHERE id_compte = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func scanAccount(rec Record) domain.Account {
	return domain.Account{
		ID:           rec.Int64("id_compte"),
		Nom:          rec.String("nom"),
		Prenom:       rec.String("prenom"),
		Email:        rec.String("email"),
		Username:     rec.String("username"),
		TypeCompte:   domain.AccountRole(rec.String("type_compte")),
		DateCreation: rec.Time("date_creation"),
	}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
