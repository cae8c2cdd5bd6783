package command

import (
	"errors"
	"fmt"
	"strings"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
)

type AddCommentCommand struct {
	ProductID uint   `json:"product_id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Body      string `json:"body"`
}

type AddCommentHandler struct {
	commentRepo domain.CommentRepository
	productRepo catalogdomain.ProductRepository
}

func NewAddCommentHandler(commentRepo domain.CommentRepository, productRepo catalogdomain.ProductRepository) *AddCommentHandler {
	return &AddCommentHandler{commentRepo: commentRepo, productRepo: productRepo}
}

func (h *AddCommentHandler) Handle(cmd AddCommentCommand) (*domain.Comment, error) {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}
	if cmd.ProductID == 0 || cmd.UserID == 0 {
		return nil, fmt.Errorf("product id and user id are required")
	}

	if _, err := h.productRepo.FindByID(cmd.ProductID); err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	comment := &domain.Comment{
		ProductID: cmd.ProductID,
		UserID:    cmd.UserID,
		Username:  cmd.Username,
		Body:      body,
	}
	if err := h.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
