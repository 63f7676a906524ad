package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// Update rewrites title and content. The owner is never changed.
	Update(ctx context.Context, id int64, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Post, error)
	ListAll(ctx context.Context) ([]*domain.Post, error)
	// DeleteByOwner removes every post of ownerID and returns the count.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
