package dto

// PaymentIntentRequestDTO asks the processor for a charge handle.
type PaymentIntentRequestDTO struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponseDTO carries the processor's client secret.
type PaymentIntentResponseDTO struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentBodyDTO is a completed payment ready for settlement.
type PaymentBodyDTO struct {
	Email         string   `json:"email" validate:"required,email"`
	TransactionID string   `json:"transactionId" validate:"required"`
	Price         float64  `json:"price" validate:"gt=0"`
	ClassIDs      []string `json:"classID" validate:"required,min=1"`
	CartIDs       []string `json:"cartID"`
}

// PaymentSettleDTO wraps the settlement payload the way clients send it.
type PaymentSettleDTO struct {
	Payment PaymentBodyDTO `json:"payment" validate:"required"`
}

// PaymentSettledResponseDTO reports the settlement outcome. Duplicate is
// true when the transaction id had already been settled.
type PaymentSettledResponseDTO struct {
	InsertedID string `json:"insertedId"`
	Duplicate  bool   `json:"duplicate,omitempty"`
}
