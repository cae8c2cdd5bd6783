package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
)

type EditCommentCommand struct {
	CommentID uint   `json:"comment_id"`
	UserID    uint   `json:"user_id"`
	Body      string `json:"body"`
}

type EditCommentHandler struct {
	commentRepo domain.CommentRepository
}

func NewEditCommentHandler(commentRepo domain.CommentRepository) *EditCommentHandler {
	return &EditCommentHandler{commentRepo: commentRepo}
}

// Handle rewrites a comment's body. Admins get no special treatment here;
// editing is strictly the author's.
func (h *EditCommentHandler) Handle(cmd EditCommentCommand) (*domain.Comment, error) {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}

	comment, err := h.commentRepo.FindByID(cmd.CommentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if comment.UserID != cmd.UserID {
		return nil, domain.ErrNotAuthor
	}

	comment.Body = body
	if err := h.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}
