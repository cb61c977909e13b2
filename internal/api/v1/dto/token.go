package dto

// TokenRequestDTO is the body of a token issuance request.
type TokenRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponseDTO carries the signed bearer token.
type TokenResponseDTO struct {
	Token string `json:"token"`
}
