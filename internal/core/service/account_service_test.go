package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[int64]*domain.Account
	nextID   int64
	inserts  int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[int64]*domain.Account), nextID: 1}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Insert(_ context.Context, account *domain.Account) error {
	r.inserts++
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.NotFoundf("account %q not found", username)
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.NotFoundf("account %d not found", id)
	}
	clone := cloneAccount(a)
	clone.PasswordHash = ""
	return clone, nil
}

func (r *stubAccountRepo) FindAll(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		clone := *a
		clone.PasswordHash = ""
		out = append(out, clone)
	}
	return out, nil
}

func (r *stubAccountRepo) UpdateInfo(_ context.Context, id int64, patch domain.AccountPatch) (int64, error) {
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	if patch.Nom != nil {
		a.Nom = *patch.Nom
	}
	if patch.Prenom != nil {
		a.Prenom = *patch.Prenom
	}
	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.Username != nil {
		a.Username = *patch.Username
	}
	return 1, nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id int64, hash string) (int64, error) {
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	a.PasswordHash = hash
	return 1, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := r.accounts[id]; !ok {
		return 0, nil
	}
	delete(r.accounts, id)
	return 1, nil
}

// recordingThrottle counts throttle interactions and can simulate a locked
// username.
type recordingThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *recordingThrottle) Exceeded(context.Context, string) (bool, error) {
	return t.blocked, nil
}
func (t *recordingThrottle) RecordFailure(context.Context, string) error {
	t.failures++
	return nil
}
func (t *recordingThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}

func newAccountService(repo ports.AccountRepository, throttle ports.LoginThrottle) *AccountService {
	return NewAccountService(repo, NewCredentialService(), throttle, "secret", time.Hour, zerolog.Nop())
}

func seedAccount(t *testing.T, svc *AccountService) {
	t.Helper()
	err := svc.Create(context.Background(), ports.CreateAccountInput{
		Nom:        "Dupont",
		Prenom:     "Jean",
		Email:      "jean.dupont@example.com",
		Username:   "jdupont",
		Password:   "Azerty12",
		TypeCompte: domain.RoleCommercial,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAccountService_Create_HashesPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)
	seedAccount(t, svc)

	stored := repo.accounts[1]
	if stored.PasswordHash == "Azerty12" {
		t.Fatalf("password stored in plaintext")
	}
	if !NewCredentialService().Verify("Azerty12", stored.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAccountService_Create_ShortPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	err := svc.Create(context.Background(), ports.CreateAccountInput{
		Nom:        "Dupont",
		Prenom:     "Jean",
		Email:      "jean@example.com",
		Username:   "jdupont",
		Password:   "short",
		TypeCompte: domain.RoleUtilisateur,
	})
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("store touched despite validation failure")
	}
}

func TestAccountService_Create_PasswordEqualsIdentity(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	err := svc.Create(context.Background(), ports.CreateAccountInput{
		Nom:        "Lemarchand",
		Prenom:     "Adrienne",
		Email:      "a.lemarchand@example.com",
		Username:   "alemarchand",
		Password:   "LEMARCHAND",
		TypeCompte: domain.RoleUtilisateur,
	})
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("store touched despite validation failure")
	}
}

func TestAccountService_Create_InvalidEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	err := svc.Create(context.Background(), ports.CreateAccountInput{
		Nom:        "Dupont",
		Prenom:     "Jean",
		Email:      "not-an-email",
		Username:   "jdupont",
		Password:   "Azerty12",
		TypeCompte: domain.RoleUtilisateur,
	})
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestAccountService_Create_InvalidRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	err := svc.Create(context.Background(), ports.CreateAccountInput{
		Nom:        "Dupont",
		Prenom:     "Jean",
		Email:      "jean@example.com",
		Username:   "jdupont",
		Password:   "Azerty12",
		TypeCompte: "SuperAdmin",
	})
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestAccountService_Authenticate_Success(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := &recordingThrottle{}
	svc := newAccountService(repo, throttle)
	seedAccount(t, svc)

	result, err := svc.Authenticate(context.Background(), "jdupont", "Azerty12")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Account.PasswordHash != "" {
		t.Fatalf("password hash leaked in auth result")
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset, got %d", throttle.resets)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "jdupont" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
	if claims["type_compte"] != "Commercial" {
		t.Fatalf("unexpected type_compte claim: %v", claims["type_compte"])
	}
}

func TestAccountService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := &recordingThrottle{}
	svc := newAccountService(repo, throttle)
	seedAccount(t, svc)

	if _, err := svc.Authenticate(context.Background(), "jdupont", "wrong-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures)
	}
}

func TestAccountService_Authenticate_UnknownUser(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, &recordingThrottle{})

	if _, err := svc.Authenticate(context.Background(), "nobody", "whatever1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Authenticate_Throttled(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, &recordingThrottle{blocked: true})
	seedAccount(t, svc)

	if _, err := svc.Authenticate(context.Background(), "jdupont", "Azerty12"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAccountService_UpdateInfo_EmptyPatch(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)
	seedAccount(t, svc)

	err := svc.UpdateInfo(context.Background(), 1, domain.AccountPatch{})
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestAccountService_UpdateInfo_AppliesPatch(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)
	seedAccount(t, svc)

	email := "nouveau@example.com"
	if err := svc.UpdateInfo(context.Background(), 1, domain.AccountPatch{Email: &email}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.accounts[1].Email != email {
		t.Fatalf("email not updated: %s", repo.accounts[1].Email)
	}
	if repo.accounts[1].Nom != "Dupont" {
		t.Fatalf("untouched field changed: %s", repo.accounts[1].Nom)
	}
}

func TestAccountService_UpdateInfo_NotFound(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	nom := "Durand"
	err := svc.UpdateInfo(context.Background(), 99, domain.AccountPatch{Nom: &nom})
	if domain.KindOf(err) != domain.FaultNotFound {
		t.Fatalf("expected not_found fault, got %v", err)
	}
}

func TestAccountService_UpdatePassword_ShortPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)
	seedAccount(t, svc)

	err := svc.UpdatePassword(context.Background(), 1, "short")
	if domain.KindOf(err) != domain.FaultValidation {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestAccountService_UpdatePassword_RotatesHash(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)
	seedAccount(t, svc)

	before := repo.accounts[1].PasswordHash
	if err := svc.UpdatePassword(context.Background(), 1, "NewSecret9"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	if repo.accounts[1].PasswordHash == before {
		t.Fatalf("hash not rotated")
	}
	if !NewCredentialService().Verify("NewSecret9", repo.accounts[1].PasswordHash) {
		t.Fatalf("new hash does not match new password")
	}
}

func TestAccountService_Delete_NotFound(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo, nil)

	err := svc.Delete(context.Background(), 42)
	if domain.KindOf(err) != domain.FaultNotFound {
		t.Fatalf("expected not_found fault, got %v", err)
	}
}
