package command

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/pkg/auth"
)

type ResetPasswordCommand struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordHandler struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

func NewResetPasswordHandler(userRepo domain.UserRepository) *ResetPasswordHandler {
	return &ResetPasswordHandler{userRepo: userRepo, now: time.Now}
}

// Handle consumes the mailed code and sets the new password. The code is
// single use: it is deleted on success.
func (h *ResetPasswordHandler) Handle(cmd ResetPasswordCommand) error {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" || cmd.Code == "" {
		return domain.ErrResetCodeInvalid
	}
	if len(cmd.NewPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	token, err := h.userRepo.FindResetCode(email)
	if err != nil {
		if errors.Is(err, domain.ErrResetCodeInvalid) {
			return err
		}
		return fmt.Errorf("failed to find reset code: %w", err)
	}
	if token.Expired(h.now()) {
		return domain.ErrResetCodeInvalid
	}
	if subtle.ConstantTimeCompare([]byte(token.Code), []byte(cmd.Code)) != 1 {
		return domain.ErrResetCodeInvalid
	}

	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrResetCodeInvalid
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := h.userRepo.UpdatePassword(user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := h.userRepo.DeleteResetCode(email); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}
	return nil
}
