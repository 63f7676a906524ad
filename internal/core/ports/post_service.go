package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// PostRef addresses a post. When OwnerID is non-zero the post must belong to
// that account or it is reported as not found.
type PostRef struct {
	PostID  int64
	OwnerID int64
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// PostService defines use-case operations for posts.
type PostService interface {
	Create(ctx context.Context, p domain.Principal, in PostInput) (*domain.Post, error)
	Get(ctx context.Context, postID int64) (*domain.Post, error)
	Update(ctx context.Context, p domain.Principal, ref PostRef, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, p domain.Principal, ref PostRef) (*domain.Post, error)
	DeleteMine(ctx context.Context, p domain.Principal) (int64, error)
	ListByOwner(ctx context.Context, p domain.Principal, ownerID int64) ([]*domain.Post, error)
	ListAll(ctx context.Context, p domain.Principal) ([]domain.PostWithOwner, error)
}
