package ports

import (
	"context"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// CreateAccountInput carries all data needed to create an account.
// Password arrives in plaintext and is hashed by the service before any I/O.
type CreateAccountInput struct {
	Nom        string
	Prenom     string
	Email      string
	Username   string
	Password   string
	TypeCompte domain.AccountRole
}

// AuthResult is returned on successful authentication.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// AccountService defines use-case operations for user accounts.
type AccountService interface {
	// Authenticate verifies username/password and mints a session token.
	// A miss and a hash mismatch both return domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	Create(ctx context.Context, input CreateAccountInput) error
	UpdateInfo(ctx context.Context, id int64, patch domain.AccountPatch) error
	UpdatePassword(ctx context.Context, id int64, newPassword string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
}

// AccountRepository defines persistence operations for accounts.
// Read projections never include the password hash except FindByUsername,
// which exists solely to serve authentication.
type AccountRepository interface {
	Insert(ctx context.Context, account *domain.Account) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	// UpdateInfo applies the patch and returns the number of rows affected.
	UpdateInfo(ctx context.Context, id int64, patch domain.AccountPatch) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CredentialService hashes and verifies password credentials. It performs no
// I/O and is independent of the database.
type CredentialService interface {
	Hash(plaintext string) (string, error)
	// Verify returns false, never an error, when the stored digest is
	// malformed or from an incompatible scheme.
	Verify(plaintext, digest string) bool
}

// LoginThrottle bounds failed authentication attempts per username within a
// rolling window.
type LoginThrottle interface {
	// Exceeded reports whether the username has exhausted its attempt budget.
	Exceeded(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
