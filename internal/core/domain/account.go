package domain

import (
	"strings"
	"time"
)

// AccountRole is the type_compte enumeration.
type AccountRole string

const (
	RoleUtilisateur    AccountRole = "Utilisateur"
	RoleCommercial     AccountRole = "Commercial"
	RoleAdministrateur AccountRole = "Administrateur"
)

var accountRoles = []AccountRole{RoleUtilisateur, RoleCommercial, RoleAdministrateur}

// Valid reports whether r is a member of the enumeration.
func (r AccountRole) Valid() bool {
	for _, known := range accountRoles {
		if r == known {
			return true
		}
	}
	return false
}

// AccountRoleNames returns the allowed set as a comma-joined string, used in
// validation messages.
func AccountRoleNames() string {
	names := make([]string, len(accountRoles))
	for i, r := range accountRoles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Account models a user of the CRM. PasswordHash is never serialized and is
// omitted from all read projections.
type Account struct {
	ID           int64       `json:"id_compte"`
	Nom          string      `json:"nom"`
	Prenom       string      `json:"prenom"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	TypeCompte   AccountRole `json:"type_compte"`
	DateCreation time.Time   `json:"date_creation"`
}

// AccountPatch is a partial update restricted to the mutable account fields.
// Nil pointers mean "leave unchanged". type_compte and password have their
// own dedicated operations and are deliberately absent.
type AccountPatch struct {
	Nom      *string
	Prenom   *string
	Email    *string
	Username *string
}

// IsEmpty reports whether the patch carries no change at all.
func (p AccountPatch) IsEmpty() bool {
	return p.Nom == nil && p.Prenom == nil && p.Email == nil && p.Username == nil
}

// Actor identifies the authenticated account performing an operation.
// Services use it to enforce row-level scoping: non-administrators only see
// and touch prospects assigned to them.
type Actor struct {
	AccountID int64
	Role      AccountRole
}

// IsAdmin reports whether the actor may operate across all assignations.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdministrateur }
