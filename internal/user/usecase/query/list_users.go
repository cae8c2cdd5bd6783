package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

type ListUsersQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListUsersHandler struct {
	userRepo domain.UserRepository
}

func NewListUsersHandler(userRepo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{userRepo: userRepo}
}

func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	users, err := h.userRepo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
