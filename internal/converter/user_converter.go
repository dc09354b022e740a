package converter

import (
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
)

func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
