package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserInput registers a shopper. The password is hashed before storage.
type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
	Name     string  `json:"name" validate:"max=120"`
	Phone    *string `json:"phone,omitempty"`
}

type UpdateUserInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
}

type AuthenticateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateEmailInput struct {
	OldEmail string `json:"oldEmail" validate:"required,email"`
	NewEmail string `json:"newEmail" validate:"required,email"`
}

type UpdateEmailResult struct {
	OK        bool `json:"ok"`
	Unchanged bool `json:"unchanged,omitempty"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
