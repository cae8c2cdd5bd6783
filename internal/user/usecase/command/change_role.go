package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

// ChangeRoleCommand is admin-only, enforced at the routing layer.
type ChangeRoleCommand struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type ChangeRoleHandler struct {
	userRepo domain.UserRepository
}

func NewChangeRoleHandler(userRepo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{userRepo: userRepo}
}

func (h *ChangeRoleHandler) Handle(cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.Role != domain.RoleUser && cmd.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", cmd.Role)
	}

	user, err := h.userRepo.FindByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Role = cmd.Role
	if err := h.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	return user, nil
}
