package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

type DeleteUserCommand struct {
	UserID   uint `json:"user_id"`
	CallerID uint `json:"-"`
	IsAdmin  bool `json:"-"`
}

type DeleteUserHandler struct {
	userRepo domain.UserRepository
}

func NewDeleteUserHandler(userRepo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{userRepo: userRepo}
}

func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	if cmd.UserID == 0 {
		return fmt.Errorf("user id is required")
	}
	if cmd.UserID != cmd.CallerID && !cmd.IsAdmin {
		return domain.ErrNotFound
	}

	if err := h.userRepo.Delete(cmd.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
