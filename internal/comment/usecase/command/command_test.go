package command

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	catalogrepo "github.com/VCL-tt/BK-VenComp/internal/catalog/repository"
	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
	"github.com/VCL-tt/BK-VenComp/internal/comment/repository"
)

func setupTest(t *testing.T) (domain.CommentRepository, catalogdomain.ProductRepository, *catalogdomain.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	productRepo := catalogrepo.NewGormProductRepository(db)
	if err := productRepo.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate catalog tables: %v", err)
	}
	commentRepo := repository.NewGormCommentRepository(db)
	if err := commentRepo.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate comment table: %v", err)
	}

	product := &catalogdomain.Product{Name: "Office PC", BasePrice: 500}
	if err := productRepo.Create(product, nil); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return commentRepo, productRepo, product
}

func TestAddComment_UnknownProduct(t *testing.T) {
	commentRepo, productRepo, _ := setupTest(t)

	_, err := NewAddCommentHandler(commentRepo, productRepo).Handle(AddCommentCommand{
		ProductID: 999,
		UserID:    1,
		Body:      "nice",
	})
	if !errors.Is(err, catalogdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddComment_EmptyBody(t *testing.T) {
	commentRepo, productRepo, product := setupTest(t)

	_, err := NewAddCommentHandler(commentRepo, productRepo).Handle(AddCommentCommand{
		ProductID: product.ID,
		UserID:    1,
		Body:      "   ",
	})
	if err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestEditComment_AuthorOnly(t *testing.T) {
	commentRepo, productRepo, product := setupTest(t)

	comment, err := NewAddCommentHandler(commentRepo, productRepo).Handle(AddCommentCommand{
		ProductID: product.ID,
		UserID:    1,
		Username:  "alice",
		Body:      "solid build",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	_, err = NewEditCommentHandler(commentRepo).Handle(EditCommentCommand{
		CommentID: comment.ID,
		UserID:    2,
		Body:      "vandalized",
	})
	if !errors.Is(err, domain.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}

	updated, err := NewEditCommentHandler(commentRepo).Handle(EditCommentCommand{
		CommentID: comment.ID,
		UserID:    1,
		Body:      "solid build, fast delivery",
	})
	if err != nil {
		t.Fatalf("EditComment() error = %v", err)
	}
	if updated.Body != "solid build, fast delivery" {
		t.Errorf("unexpected body %q", updated.Body)
	}
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	commentRepo, productRepo, product := setupTest(t)

	comment, err := NewAddCommentHandler(commentRepo, productRepo).Handle(AddCommentCommand{
		ProductID: product.ID,
		UserID:    1,
		Body:      "solid build",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if err := NewDeleteCommentHandler(commentRepo).Handle(DeleteCommentCommand{
		CommentID: comment.ID,
		UserID:    2,
	}); !errors.Is(err, domain.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}

	if err := NewDeleteCommentHandler(commentRepo).Handle(DeleteCommentCommand{
		CommentID: comment.ID,
		UserID:    1,
	}); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}

	if _, err := commentRepo.FindByID(comment.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
