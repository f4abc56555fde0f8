package user

// NewUser represents the request body for registration.
type NewUser struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=renter landlord"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// PhoneInput sets the caller's mobile money number.
type PhoneInput struct {
	Phone string `json:"phone" validate:"required,max=20"`
}

// RoleInput assigns a role.
type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin verifier landlord renter"`
}
