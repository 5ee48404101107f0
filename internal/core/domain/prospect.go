package domain

import (
	"strings"
	"time"
)

// ProspectType is the type enumeration of a prospect.
type ProspectType string

const (
	TypeParticulier  ProspectType = "particulier"
	TypeSociete      ProspectType = "societe"
	TypeOrganisation ProspectType = "organisation"
)

var prospectTypes = []ProspectType{TypeParticulier, TypeSociete, TypeOrganisation}

func (t ProspectType) Valid() bool {
	for _, known := range prospectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProspectTypeNames returns the allowed set as a comma-joined string.
func ProspectTypeNames() string {
	names := make([]string, len(prospectTypes))
	for i, t := range prospectTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ProspectStatus is the sales-pipeline status enumeration.
type ProspectStatus string

const (
	StatusNouveau     ProspectStatus = "nouveau"
	StatusInteresse   ProspectStatus = "interesse"
	StatusNegociation ProspectStatus = "negociation"
	StatusPerdu       ProspectStatus = "perdu"
	StatusConverti    ProspectStatus = "converti"
)

var prospectStatuses = []ProspectStatus{
	StatusNouveau, StatusInteresse, StatusNegociation, StatusPerdu, StatusConverti,
}

func (s ProspectStatus) Valid() bool {
	for _, known := range prospectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ProspectStatusNames returns the allowed set as a comma-joined string.
func ProspectStatusNames() string {
	names := make([]string, len(prospectStatuses))
	for i, s := range prospectStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Prospect is a sales lead. Assignation is a weak reference to the owning
// Account; referential validity is the store's job, not checked here.
// DateUpdate advances on every mutation, including indirectly when an
// interaction is recorded against the prospect.
type Prospect struct {
	ID          int64          `json:"id_prospect"`
	Nomp        string         `json:"nomp"`
	Prenomp     string         `json:"prenomp"`
	Telephone   string         `json:"telephone"`
	Email       string         `json:"email"`
	Adresse     string         `json:"adresse"`
	Type        ProspectType   `json:"type"`
	Status      ProspectStatus `json:"status"`
	Assignation int64          `json:"assignation"`
	Creation    time.Time      `json:"creation"`
	DateUpdate  time.Time      `json:"date_update"`
}

// ProspectPatch is a partial update restricted to the mutable prospect
// fields. Enum fields are re-validated by the service before any write; an
// invalid value rejects the whole patch with no partial application.
type ProspectPatch struct {
	Nomp        *string
	Prenomp     *string
	Telephone   *string
	Email       *string
	Adresse     *string
	Type        *ProspectType
	Status      *ProspectStatus
	Assignation *int64
}

// IsEmpty reports whether the patch carries no change at all.
func (p ProspectPatch) IsEmpty() bool {
	return p.Nomp == nil && p.Prenomp == nil && p.Telephone == nil &&
		p.Email == nil && p.Adresse == nil && p.Type == nil &&
		p.Status == nil && p.Assignation == nil
}
