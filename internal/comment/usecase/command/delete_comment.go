package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
)

type DeleteCommentCommand struct {
	CommentID uint `json:"comment_id"`
	UserID    uint `json:"user_id"`
}

type DeleteCommentHandler struct {
	commentRepo domain.CommentRepository
}

func NewDeleteCommentHandler(commentRepo domain.CommentRepository) *DeleteCommentHandler {
	return &DeleteCommentHandler{commentRepo: commentRepo}
}

func (h *DeleteCommentHandler) Handle(cmd DeleteCommentCommand) error {
	comment, err := h.commentRepo.FindByID(cmd.CommentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}
	if comment.UserID != cmd.UserID {
		return domain.ErrNotAuthor
	}

	if err := h.commentRepo.Delete(cmd.CommentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
