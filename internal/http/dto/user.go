package dto

import (
	"time"

	"radbytes.org/pulse/internal/model"
)

type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,notblank,max=255"`
	IsManager bool   `json:"is_manager"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	IsManager bool      `json:"is_manager"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		IsManager: u.IsManager,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
