package dto

// UserCreateDTO is the first-sign-in payload.
type UserCreateDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoURL"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// RoleCheckRequestDTO asks for the role attached to an email.
type RoleCheckRequestDTO struct {
	Email string `json:"email"`
}

// RoleCheckResponseDTO returns the stored role, null when unknown.
type RoleCheckResponseDTO struct {
	Role *string `json:"role"`
}

// AdminFlagDTO is the admin self-check result.
type AdminFlagDTO struct {
	Admin bool `json:"admin"`
}

// InstructorFlagDTO is the instructor self-check result.
type InstructorFlagDTO struct {
	Instructor bool `json:"instructor"`
}

// MessageDTO is a plain informational response.
type MessageDTO struct {
	Message string `json:"message"`
}
