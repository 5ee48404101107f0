package domain

import (
	"strings"
	"time"
)

// InteractionType is the contact-channel enumeration.
type InteractionType string

const (
	InteractionEmail   InteractionType = "email"
	InteractionAppel   InteractionType = "appel"
	InteractionSMS     InteractionType = "sms"
	InteractionReunion InteractionType = "reunion"
	InteractionNote    InteractionType = "note"
)

var interactionTypes = []InteractionType{
	InteractionEmail, InteractionAppel, InteractionSMS, InteractionReunion, InteractionNote,
}

func (t InteractionType) Valid() bool {
	for _, known := range interactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// InteractionTypeNames returns the allowed set as a comma-joined string.
func InteractionTypeNames() string {
	names := make([]string, len(interactionTypes))
	for i, t := range interactionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Interaction is one append-only contact-history entry. ProspectID is a
// strong reference: interactions are removed when their prospect is deleted.
// CompteID records the author. DateInteraction is set server-side at insert
// and immutable thereafter.
type Interaction struct {
	ID              int64           `json:"id_interaction"`
	ProspectID      int64           `json:"id_prospect"`
	CompteID        int64           `json:"id_compte"`
	Type            InteractionType `json:"type"`
	Note            string          `json:"note"`
	DateInteraction time.Time       `json:"date_interaction"`
}
