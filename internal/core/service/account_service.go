package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

const minPasswordLength = 8

// emailPattern is the same simple local@domain.tld check the store's
// triggers apply; real mailbox validation is out of scope.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// AccountService implements account CRUD and authentication.
type AccountService struct {
	repo        ports.AccountRepository
	credentials ports.CredentialService
	throttle    ports.LoginThrottle
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	credentials ports.CredentialService,
	throttle ports.LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if throttle == nil {
		throttle = NoopThrottle{}
	}
	return &AccountService{
		repo:        repo,
		credentials: credentials,
		throttle:    throttle,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

// Authenticate looks up the account by username and verifies the password.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.Exceeded(ctx, username)
	if err != nil {
		// Throttle outage must not lock everyone out.
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.throttle.RecordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.credentials.Verify(password, account.PasswordHash) {
		_ = s.throttle.RecordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	_ = s.throttle.Reset(ctx, username)

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""
	s.log.Info().Str("username", username).Str("type_compte", string(account.TypeCompte)).Msg("account authenticated")
	return &ports.AuthResult{Token: token, Account: account}, nil
}

// Create validates the input, hashes the password, and inserts the account.
// Uniqueness of username/email is the store's job and surfaces as a
// constraint fault, not a pre-check here.
func (s *AccountService) Create(ctx context.Context, in ports.CreateAccountInput) error {
	if err := validateAccountData(in); err != nil {
		return err
	}

	hash, err := s.credentials.Hash(in.Password)
	if err != nil {
		return err
	}

	account := &domain.Account{
		Nom:          in.Nom,
		Prenom:       in.Prenom,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		TypeCompte:   in.TypeCompte,
	}
	if err := s.repo.Insert(ctx, account); err != nil {
		return err
	}

	s.log.Info().Str("username", in.Username).Msg("account created")
	return nil
}

// UpdateInfo applies a partial update to the mutable identity fields.
// An empty patch is a failure, not a silent no-op.
func (s *AccountService) UpdateInfo(ctx context.Context, id int64, patch domain.AccountPatch) error {
	if patch.IsEmpty() {
		return domain.Validationf("nothing to update")
	}
	if patch.Email != nil && !emailPattern.MatchString(*patch.Email) {
		return domain.Validationf("invalid email format")
	}

	rows, err := s.repo.UpdateInfo(ctx, id, patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("account %d not found", id)
	}
	return nil
}

// UpdatePassword re-applies the length policy and stores a fresh hash. The
// password-equals-identity rule only applies at creation and is not
// re-checked here.
func (s *AccountService) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.Validationf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.credentials.Hash(newPassword)
	if err != nil {
		return err
	}

	rows, err := s.repo.UpdatePassword(ctx, id, hash)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("account %d not found", id)
	}
	return nil
}

// Delete removes the account. Referential constraints (the account is still
// assigned prospects, authored interactions, or is the last administrator)
// are enforced by the store and surface as constraint faults.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("account %d not found", id)
	}
	s.log.Info().Int64("id_compte", id).Msg("account deleted")
	return nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.repo.FindAll(ctx)
}

func (s *AccountService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"id_compte":   account.ID,
		"username":    account.Username,
		"type_compte": string(account.TypeCompte),
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateAccountData enforces the creation policy before any I/O.
func validateAccountData(in ports.CreateAccountInput) error {
	if in.Nom == "" || in.Prenom == "" || in.Username == "" {
		return domain.Validationf("nom, prenom and username are required")
	}
	if len(in.Password) < minPasswordLength {
		return domain.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.Validationf("invalid email format")
	}
	lowered := strings.ToLower(in.Password)
	if lowered == strings.ToLower(in.Nom) ||
		lowered == strings.ToLower(in.Prenom) ||
		lowered == strings.ToLower(in.Username) {
		return domain.Validationf("password must not be the nom, prenom or username")
	}
	if !in.TypeCompte.Valid() {
		return domain.Validationf("invalid account type %q, must be one of: %s", in.TypeCompte, domain.AccountRoleNames())
	}
	return nil
}

// NoopThrottle satisfies ports.LoginThrottle when no Redis is configured.
type NoopThrottle struct{}

func (NoopThrottle) Exceeded(context.Context, string) (bool, error) { return false, nil }
func (NoopThrottle) RecordFailure(context.Context, string) error    { return nil }
func (NoopThrottle) Reset(context.Context, string) error            { return nil }
