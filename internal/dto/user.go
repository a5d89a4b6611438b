package dto

import (
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
)

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user's capabilities.
type LoginResponse struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expireAt"`
	User     UserResponse `json:"user"`
}

// CreateUserRequest defines the data needed to register an operator.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	FullName   string `json:"fullName"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,oneof=admin accountant viewer"`
	CanDelete  bool   `json:"canDelete"`
	CanReports bool   `json:"canReports"`
	CanUsers   bool   `json:"canUsers"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	Role       string    `json:"role"`
	CanDelete  bool      `json:"canDelete"`
	CanReports bool      `json:"canReports"`
	CanUsers   bool      `json:"canUsers"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		FullName:   u.FullName,
		Role:       u.Role,
		CanDelete:  u.CanDelete,
		CanReports: u.CanReports,
		CanUsers:   u.CanUsers,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of users to response DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
