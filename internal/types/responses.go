package types

import (
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
)

type UserResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"nome"`
	Email string      `json:"email"`
	Role  models.Role `json:"tipo"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
