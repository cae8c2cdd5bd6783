package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/pkg/auth"
)

type RegisterCommand struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterHandler struct {
	userRepo domain.UserRepository
}

func NewRegisterHandler(userRepo domain.UserRepository) *RegisterHandler {
	return &RegisterHandler{userRepo: userRepo}
}

func (h *RegisterHandler) Handle(cmd RegisterCommand) (*domain.User, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))

	if cmd.Username == "" || cmd.Email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashed,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Role:      domain.RoleUser,
		Active:    true,
	}
	if err := h.userRepo.Create(user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
