package auth

import "github.com/tankstore/storefront-backend/internal/users"

// LoginRequest captures the credentials sent to the login endpoint. Clients
// may send the email under either "email" or "username".
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier returns the email, falling back to the username field.
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// LoginResponse contains the signed admin token and the public user fields.
type LoginResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}
