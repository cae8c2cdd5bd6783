package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

// UpdateUserCommand edits profile fields. Only the user themselves or an
// admin may update; role and active flags have their own commands.
type UpdateUserCommand struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	CallerID uint `json:"-"`
	IsAdmin  bool `json:"-"`
}

type UpdateUserHandler struct {
	userRepo domain.UserRepository
}

func NewUpdateUserHandler(userRepo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{userRepo: userRepo}
}

func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.UserID != cmd.CallerID && !cmd.IsAdmin {
		return nil, domain.ErrNotFound
	}

	user, err := h.userRepo.FindByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if v := strings.TrimSpace(cmd.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(strings.ToLower(cmd.Email)); v != "" {
		if !strings.Contains(v, "@") {
			return nil, fmt.Errorf("invalid email address")
		}
		user.Email = v
	}
	if cmd.FirstName != "" {
		user.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		user.LastName = cmd.LastName
	}

	if err := h.userRepo.Update(user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) ||
			errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
