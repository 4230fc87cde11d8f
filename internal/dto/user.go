package dto

import "github.com/andestrack/field-service-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Role        models.UserRole `json:"role"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
}
