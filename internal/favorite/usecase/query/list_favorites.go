package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

type ListFavoritesQuery struct {
	UserID uint `json:"user_id"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
}

type ListFavoritesHandler struct {
	favoriteRepo domain.FavoriteRepository
}

func NewListFavoritesHandler(favoriteRepo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{favoriteRepo: favoriteRepo}
}

func (h *ListFavoritesHandler) Handle(q ListFavoritesQuery) ([]domain.FavoriteItem, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	items, err := h.favoriteRepo.ListByUser(q.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return items, nil
}
