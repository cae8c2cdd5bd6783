package command

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
	"github.com/VCL-tt/BK-VenComp/pkg/mailer"
)

const resetCodeTTL = time.Hour

type RequestPasswordResetCommand struct {
	Email string `json:"email"`
}

type RequestPasswordResetHandler struct {
	userRepo domain.UserRepository
	mailer   mailer.Mailer
	now      func() time.Time
}

func NewRequestPasswordResetHandler(userRepo domain.UserRepository, m mailer.Mailer) *RequestPasswordResetHandler {
	return &RequestPasswordResetHandler{userRepo: userRepo, mailer: m, now: time.Now}
}

// Handle mails a 6-digit code to the address. An unknown email succeeds
// without sending anything, so the endpoint cannot be used to probe for
// registered accounts.
func (h *RequestPasswordResetHandler) Handle(cmd RequestPasswordResetCommand) error {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiresAt := h.now().Add(resetCodeTTL)
	if err := h.userRepo.ReplaceResetCode(user.Email, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour password reset code is: %s\n\nIt expires in 1 hour.",
		user.Username, code)
	if err := h.mailer.Send(user.Email, "Password reset code", body); err != nil {
		logger.Logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send reset mail")
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// generateResetCode returns a random 6-digit code, left-padded with zeros.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
