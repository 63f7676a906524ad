package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// PostService implements post operations. Every mutation passes the ownership
// guard against the owner recorded in the store.
type PostService struct {
	bounded
	posts    ports.PostRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewPostService(posts ports.PostRepository, accounts ports.AccountRepository, log zerolog.Logger, opts ...Option) *PostService {
	return &PostService{bounded: newBounded(opts), posts: posts, accounts: accounts, log: log, now: time.Now}
}

// Create stores a new post owned by the caller.
func (s *PostService) Create(ctx context.Context, p domain.Principal, in ports.PostInput) (*domain.Post, error) {
	now := s.now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		OwnerID:   p.AccountID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("post_id", post.ID).Int64("account_id", p.AccountID).Msg("post created")
	return post, nil
}

// Get returns a post without any access check.
func (s *PostService) Get(ctx context.Context, postID int64) (*domain.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

// Update rewrites title and content when the caller owns the post or is an admin.
func (s *PostService) Update(ctx context.Context, p domain.Principal, ref ports.PostRef, in ports.PostInput) (*domain.Post, error) {
	post, err := s.authorize(ctx, p, ref)
	if err != nil {
		return nil, err
	}
	updated, err := s.posts.Update(ctx, post.ID, in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("post_id", post.ID).Int64("actor_id", p.AccountID).Msg("post updated")
	return updated, nil
}

// Delete removes a post when the caller owns it or is an admin.
func (s *PostService) Delete(ctx context.Context, p domain.Principal, ref ports.PostRef) (*domain.Post, error) {
	post, err := s.authorize(ctx, p, ref)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return nil, err
	}
	s.log.Info().Int64("post_id", post.ID).Int64("actor_id", p.AccountID).Msg("post deleted")
	return post, nil
}

// DeleteMine removes every post of the caller. No posts yields domain.ErrNoPosts.
func (s *PostService) DeleteMine(ctx context.Context, p domain.Principal) (int64, error) {
	n, err := s.posts.DeleteByOwner(ctx, p.AccountID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNoPosts
	}
	return n, nil
}

// ListByOwner lists the posts of ownerID; zero means the caller. Members may
// only list their own.
func (s *PostService) ListByOwner(ctx context.Context, p domain.Principal, ownerID int64) ([]*domain.Post, error) {
	if ownerID == 0 {
		ownerID = p.AccountID
	}
	if err := auth.RequireOwnership(p, ownerID); err != nil {
		return nil, err
	}
	if err := s.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrNoPosts
	}
	return posts, nil
}

// ListAll returns every post with its owner summary. Admin only.
func (s *PostService) ListAll(ctx context.Context, p domain.Principal) ([]domain.PostWithOwner, error) {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[int64]domain.OwnerSummary)
	out := make([]domain.PostWithOwner, 0, len(posts))
	for _, post := range posts {
		owner, ok := owners[post.OwnerID]
		if !ok {
			owner = domain.OwnerSummary{ID: post.OwnerID}
			acct, err := s.accounts.FindByID(ctx, post.OwnerID)
			switch {
			case err == nil:
				owner = domain.OwnerSummary{ID: acct.ID, Email: acct.Email, Name: acct.Profile.Name, Role: acct.Role}
			case !errors.Is(err, domain.ErrAccountNotFound):
				return nil, err
			}
			owners[post.OwnerID] = owner
		}
		out = append(out, domain.PostWithOwner{Post: *post, Owner: owner})
	}
	return out, nil
}

// authorize loads the post addressed by ref and applies the ownership guard.
func (s *PostService) authorize(ctx context.Context, p domain.Principal, ref ports.PostRef) (*domain.Post, error) {
	lookupCtx, cancel := s.lookup(ctx)
	post, err := s.posts.FindByID(lookupCtx, ref.PostID)
	cancel()
	if err != nil {
		return nil, storeError(err)
	}
	if ref.OwnerID != 0 && post.OwnerID != ref.OwnerID {
		return nil, domain.ErrPostNotFound
	}
	if err := auth.RequireOwnership(p, post.OwnerID); err != nil {
		s.log.Info().Int64("post_id", post.ID).Int64("actor_id", p.AccountID).Msg("post mutation refused")
		return nil, err
	}
	if post.OwnerID != p.AccountID {
		if err := s.ownerNotAdmin(ctx, post.OwnerID); err != nil {
			s.log.Info().Int64("post_id", post.ID).Int64("actor_id", p.AccountID).Msg("admin post mutation refused")
			return nil, err
		}
	}
	return post, nil
}

// ownerNotAdmin refuses an admin override on a post owned by another admin.
// Posts whose owner is gone stay open to admins.
func (s *PostService) ownerNotAdmin(ctx context.Context, ownerID int64) error {
	ctx, cancel := s.lookup(ctx)
	defer cancel()

	owner, err := s.accounts.FindByID(ctx, ownerID)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil
	case err != nil:
		return storeError(err)
	case owner.Role == domain.RoleAdmin:
		return domain.ErrNotOwner
	}
	return nil
}

func (s *PostService) ownerExists(ctx context.Context, ownerID int64) error {
	ctx, cancel := s.lookup(ctx)
	defer cancel()
	_, err := s.accounts.FindByID(ctx, ownerID)
	return storeError(err)
}
