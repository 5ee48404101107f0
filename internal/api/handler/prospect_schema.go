package handler

// --- Request / Response types ---

type createProspectRequest struct {
	Nomp        string `json:"nomp"        validate:"required"`
	Prenomp     string `json:"prenomp"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Adresse     string `json:"adresse"`
	Type        string `json:"type"        validate:"required,oneof=particulier societe organisation"`
	Assignation int64  `json:"assignation"`
}

type createProspectResponse struct {
	ID int64 `json:"id_prospect"`
}

// updateProspectRequest uses pointer fields so absent keys are
// distinguishable from empty strings; only present fields are written.
type updateProspectRequest struct {
	Nomp        *string `json:"nomp,omitempty"`
	Prenomp     *string `json:"prenomp,omitempty"`
	Telephone   *string `json:"telephone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Adresse     *string `json:"adresse,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Assignation *int64  `json:"assignation,omitempty"`
}
