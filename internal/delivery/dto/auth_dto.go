package dto

// LoginRequest is the body of POST /api/login. Staff sign in with an email,
// patients with their phone number.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,login"`
	Password string `json:"password" validate:"required"`
}

// RoleResponse is what the auth endpoint answers on success. The session
// itself travels in the Set-Cookie header.
type RoleResponse struct {
	Role string `json:"role" validate:"required,oneof=superadmin admin doctor patient"`
}

// IdentityResponse is the popover block every page view carries.
type IdentityResponse struct {
	UserID   int    `json:"user_id"`
	Role     string `json:"role,omitempty"`
	FullName string `json:"full_name"`
}

// ChangeEmailRequest and ChangePasswordRequest act on the signed-in user.
type ChangeEmailRequest struct {
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}
