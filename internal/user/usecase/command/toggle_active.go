package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

// ToggleActiveCommand enables or disables an account. Disabled users keep
// their data but cannot log in.
type ToggleActiveCommand struct {
	UserID uint `json:"user_id"`
	Active bool `json:"active"`
}

type ToggleActiveHandler struct {
	userRepo domain.UserRepository
}

func NewToggleActiveHandler(userRepo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{userRepo: userRepo}
}

func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	user, err := h.userRepo.FindByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Active = cmd.Active
	if err := h.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
