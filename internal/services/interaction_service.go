package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// InteractionService manages likes, comments and ratings embedded in posts.
// Every mutation is a read-modify-write of the single post record.
type InteractionService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(posts repositories.PostRepository, users repositories.UserRepository) *InteractionService {
	return &InteractionService{posts: posts, users: users}
}

// ToggleLike adds actorID to the post's likes, or removes it if present.
// liked reports the state after the toggle.
func (s *InteractionService) ToggleLike(ctx context.Context, postID, actorID string) (post *models.Post, liked bool, err error) {
	post, _, err = s.loadVisible(ctx, postID, actorID)
	if err != nil {
		return nil, false, err
	}
	if remaining, removed := without(post.Likes, actorID); removed {
		post.Likes = remaining
	} else {
		post.Likes = append(post.Likes, actorID)
		liked = true
	}
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, false, err
	}
	return post, liked, nil
}

// AddComment appends a comment by actorID.
func (s *InteractionService) AddComment(ctx context.Context, postID, actorID, content string) (*models.Post, *models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, apperr.InvalidArgument("comment content is required")
	}
	post, actor, err := s.loadVisible(ctx, postID, actorID)
	if err != nil {
		return nil, nil, err
	}
	comment := models.Comment{
		ID:         uuid.NewString(),
		AuthorID:   actorID,
		AuthorName: actor.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	post.Comments = append(post.Comments, comment)
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, &comment, nil
}

// Rate records actorID's rating of a recipe post, replacing any earlier
// rating by the same user, then recomputes recipe_data.rating as the mean.
func (s *InteractionService) Rate(ctx context.Context, postID, actorID string, rating int) (*models.Post, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, apperr.InvalidArgument("rating must be between %d and %d", MinRating, MaxRating)
	}
	post, actor, err := s.loadVisible(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	if post.Type != models.PostTypeRecipe {
		return nil, apperr.InvalidArgument("only recipe posts can be rated")
	}

	ratings := make([]models.Rating, 0, len(post.Ratings)+1)
	for _, r := range post.Ratings {
		if r.UserID != actorID {
			ratings = append(ratings, r)
		}
	}
	ratings = append(ratings, models.Rating{
		UserID:    actorID,
		UserName:  actor.Name,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	})
	post.Ratings = ratings
	if post.RecipeData == nil {
		post.RecipeData = &models.RecipeData{}
	}
	post.RecipeData.Rating = AverageRating(ratings)

	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AverageRating is the arithmetic mean of the ratings, or 0 when there are none.
func AverageRating(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

// loadVisible loads the post and the actor's profile. Posts the actor may
// not see are reported as not found.
func (s *InteractionService) loadVisible(ctx context.Context, postID, actorID string) (*models.Post, *models.Profile, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	actor, _, err := s.users.GetProfile(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if !CanView(post, actorID, actor.Following) {
		return nil, nil, apperr.NotFound("post %s not found", postID)
	}
	return post, actor, nil
}
