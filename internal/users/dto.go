package users

import (
	"strings"

	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := strings.TrimSpace(c.Role)
	if role == "" {
		role = models.RoleAdmin
	}
	return &models.User{
		Email:        strings.ToLower(strings.TrimSpace(c.Email)),
		Name:         c.Name,
		PasswordHash: c.PasswordHash,
		Role:         role,
	}
}

func isNotFound(err error) bool {
	return pkgerrors.IsCode(err, pkgerrors.CodeNotFound)
}
