package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/pkg/auth"
)

type LoginCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type LoginHandler struct {
	userRepo domain.UserRepository
}

func NewLoginHandler(userRepo domain.UserRepository) *LoginHandler {
	return &LoginHandler{userRepo: userRepo}
}

func (h *LoginHandler) Handle(cmd LoginCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	user, err := h.userRepo.FindByUsername(cmd.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrUserInactive
	}
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}
