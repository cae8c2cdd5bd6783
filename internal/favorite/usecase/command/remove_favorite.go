package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

type RemoveFavoriteCommand struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

type RemoveFavoriteHandler struct {
	favoriteRepo domain.FavoriteRepository
}

func NewRemoveFavoriteHandler(favoriteRepo domain.FavoriteRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favoriteRepo: favoriteRepo}
}

func (h *RemoveFavoriteHandler) Handle(cmd RemoveFavoriteCommand) error {
	if cmd.UserID == 0 || cmd.ProductID == 0 {
		return fmt.Errorf("user id and product id are required")
	}

	if err := h.favoriteRepo.Remove(cmd.UserID, cmd.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
