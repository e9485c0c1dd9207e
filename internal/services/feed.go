package services

import (
	"context"
	"sort"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
)

// CanView applies the privacy rules, in order: authors always see their own
// posts; public posts are visible to everyone; followers-only posts are
// visible to viewers following the author; anything else (private, or an
// unknown tier) is hidden. A missing privacy value counts as public.
func CanView(post *models.Post, viewerID string, viewerFollowing []string) bool {
	if viewerID != "" && post.AuthorID == viewerID {
		return true
	}
	switch post.Privacy {
	case models.PrivacyPublic, "":
		return true
	case models.PrivacyFollowers:
		for _, id := range viewerFollowing {
			if id == post.AuthorID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// FilterVisible returns the posts viewerID may see, preserving input order.
func FilterVisible(posts []models.Post, viewerID string, viewerFollowing []string) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		if CanView(&posts[i], viewerID, viewerFollowing) {
			out = append(out, posts[i])
		}
	}
	return out
}

// SortNewestFirst orders posts by created_at descending.
func SortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// FeedPage is one page of a filtered feed.
type FeedPage struct {
	Posts []models.Post
	Total int
	Page  int
	Limit int
}

// FeedService assembles feeds from the post store and the viewer's graph.
type FeedService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(posts repositories.PostRepository, users repositories.UserRepository) *FeedService {
	return &FeedService{posts: posts, users: users}
}

// Feed returns the page of posts viewerID may see, newest first.
// page is 1-based.
func (s *FeedService) Feed(ctx context.Context, viewerID string, page, limit int) (*FeedPage, error) {
	viewer, _, err := s.users.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	all, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	visible := FilterVisible(all, viewerID, viewer.Following)
	SortNewestFirst(visible)
	return paginate(visible, page, limit), nil
}

// UserPosts returns authorID's posts that viewerID may see, newest first.
func (s *FeedService) UserPosts(ctx context.Context, viewerID, authorID string) ([]models.Post, error) {
	if !models.IsValidID(authorID) {
		return nil, apperr.InvalidArgument("invalid user id %q", authorID)
	}
	viewer, _, err := s.users.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ids, err := s.posts.ListUserPostIDs(ctx, authorID)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.posts.GetPost(ctx, id)
		if apperr.Is(err, apperr.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	visible := FilterVisible(posts, viewerID, viewer.Following)
	SortNewestFirst(visible)
	return visible, nil
}

func paginate(posts []models.Post, page, limit int) *FeedPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(posts) {
		start = len(posts)
	}
	end := min(start+limit, len(posts))
	return &FeedPage{Posts: posts[start:end], Total: len(posts), Page: page, Limit: limit}
}
