package query

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

type GetUserQuery struct {
	UserID uint `json:"user_id"`
}

type GetUserHandler struct {
	userRepo domain.UserRepository
}

func NewGetUserHandler(userRepo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{userRepo: userRepo}
}

func (h *GetUserHandler) Handle(q GetUserQuery) (*domain.User, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	user, err := h.userRepo.FindByID(q.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
