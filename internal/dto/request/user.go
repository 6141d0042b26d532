package request

// UpdateUserRequest is a patch; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=guest user admin"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}
