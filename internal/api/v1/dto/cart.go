package dto

// CartItemDTO is a single add-to-cart entry.
type CartItemDTO struct {
	ClassID string `json:"classId" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// CartAddDTO wraps the add payload the way clients send it.
type CartAddDTO struct {
	CartItem CartItemDTO `json:"cartItem" validate:"required"`
}

// CanAddResponseDTO reports whether a class can still be added to the
// caller's cart (true when the pair is absent).
type CanAddResponseDTO struct {
	CanAdd bool `json:"canAdd"`
}
