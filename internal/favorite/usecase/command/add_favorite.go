package command

import (
	"errors"
	"fmt"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

type AddFavoriteCommand struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

type AddFavoriteHandler struct {
	favoriteRepo domain.FavoriteRepository
}

func NewAddFavoriteHandler(favoriteRepo domain.FavoriteRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{favoriteRepo: favoriteRepo}
}

func (h *AddFavoriteHandler) Handle(cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.UserID == 0 || cmd.ProductID == 0 {
		return nil, fmt.Errorf("user id and product id are required")
	}

	favorite, err := h.favoriteRepo.Add(cmd.UserID, cmd.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return favorite, nil
}
