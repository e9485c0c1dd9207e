package services

import (
	"context"
	"time"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/google/uuid"
)

// PostService handles post authoring. Only the author may edit or delete.
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// Create stores a new post and appends it to the author's post index.
func (s *PostService) Create(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error) {
	author, _, err := s.users.GetProfile(ctx, authorID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	post := &models.Post{
		ID:              uuid.NewString(),
		AuthorID:        authorID,
		AuthorName:      author.Name,
		Type:            req.Type,
		Content:         req.Content,
		Images:          req.Images,
		Video:           req.Video,
		BackgroundColor: req.BackgroundColor,
		Privacy:         req.Privacy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	models.NormalizePost(post)
	if post.Type == models.PostTypeRecipe {
		if req.RecipeData == nil {
			return nil, apperr.InvalidArgument("recipe posts require recipe_data")
		}
		post.RecipeData = recipeData(req.RecipeData, 0)
	}

	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	if err := s.posts.AddUserPost(ctx, authorID, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns the post if viewerID may see it; hidden posts are not found.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	viewer, _, err := s.users.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !CanView(post, viewerID, viewer.Following) {
		return nil, apperr.NotFound("post %s not found", postID)
	}
	return post, nil
}

// Update edits the author-controlled fields. The derived rating is kept.
func (s *PostService) Update(ctx context.Context, postID, actorID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.ownedPost(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Images != nil {
		post.Images = req.Images
	}
	if req.Video != nil {
		post.Video = *req.Video
	}
	if req.BackgroundColor != nil {
		post.BackgroundColor = *req.BackgroundColor
	}
	if req.Privacy != nil {
		post.Privacy = *req.Privacy
	}
	if req.RecipeData != nil {
		if post.Type != models.PostTypeRecipe {
			return nil, apperr.InvalidArgument("recipe_data is only valid on recipe posts")
		}
		post.RecipeData = recipeData(req.RecipeData, AverageRating(post.Ratings))
	}
	post.UpdatedAt = time.Now().UTC()
	models.NormalizePost(post)
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post and its entry in the author's post index.
func (s *PostService) Delete(ctx context.Context, postID, actorID string) error {
	post, err := s.ownedPost(ctx, postID, actorID)
	if err != nil {
		return err
	}
	if err := s.posts.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	return s.posts.RemoveUserPost(ctx, post.AuthorID, post.ID)
}

func (s *PostService) ownedPost(ctx context.Context, postID, actorID string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can modify post %s", postID)
	}
	return post, nil
}

func recipeData(req *models.RecipeDataRequest, rating float64) *models.RecipeData {
	return &models.RecipeData{
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Time:       req.Time,
		Servings:   req.Servings,
		Rating:     rating,
	}
}
