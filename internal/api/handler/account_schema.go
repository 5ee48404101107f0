package handler

// --- Request / Response types ---

type createAccountRequest struct {
	Nom        string `json:"nom"         validate:"required"`
	Prenom     string `json:"prenom"      validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Username   string `json:"username"    validate:"required"`
	Password   string `json:"password"    validate:"required,min=8"`
	TypeCompte string `json:"type_compte" validate:"required,oneof=Utilisateur Commercial Administrateur"`
}

// updateAccountRequest uses pointer fields so absent keys are distinguishable
// from empty strings; only present fields are written.
type updateAccountRequest struct {
	Nom      *string `json:"nom,omitempty"`
	Prenom   *string `json:"prenom,omitempty"`
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
