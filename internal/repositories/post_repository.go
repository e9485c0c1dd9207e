package repositories

import (
	"context"
	"encoding/json"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetPost(ctx context.Context, id string) (*models.Post, error)
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListUserPostIDs(ctx context.Context, userID string) ([]string, error)
	AddUserPost(ctx context.Context, userID, postID string) error
	RemoveUserPost(ctx context.Context, userID, postID string) error
	DropUserPosts(ctx context.Context, userID string) error
}

// KVPostRepository implements PostRepository on the kv store
type KVPostRepository struct {
	store     kv.Store
	userPosts idIndex
}

// NewKVPostRepository creates a new KVPostRepository
func NewKVPostRepository(store kv.Store) *KVPostRepository {
	return &KVPostRepository{
		store:     store,
		userPosts: idIndex{store: store, keyFor: UserPostsKey},
	}
}

// GetPost retrieves a normalized post by ID
func (r *KVPostRepository) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	found, err := kv.GetJSON(ctx, r.store, PostKey(id), &post)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("post %s not found", id)
	}
	post.ID = id
	models.NormalizePost(&post)
	return &post, nil
}

func (r *KVPostRepository) SavePost(ctx context.Context, post *models.Post) error {
	return kv.SetJSON(ctx, r.store, PostKey(post.ID), post)
}

func (r *KVPostRepository) DeletePost(ctx context.Context, id string) error {
	return r.store.Delete(ctx, PostKey(id))
}

// ListPosts returns every stored post in key order. Records that do not
// decode as posts are skipped.
func (r *KVPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	entries, err := r.store.ScanPrefix(ctx, postPrefix)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(entries))
	for _, e := range entries {
		var post models.Post
		if err := json.Unmarshal(e.Value, &post); err != nil {
			continue
		}
		post.ID = e.Key[len(postPrefix):]
		models.NormalizePost(&post)
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *KVPostRepository) ListUserPostIDs(ctx context.Context, userID string) ([]string, error) {
	return r.userPosts.List(ctx, userID)
}

func (r *KVPostRepository) AddUserPost(ctx context.Context, userID, postID string) error {
	return r.userPosts.Add(ctx, userID, postID)
}

func (r *KVPostRepository) RemoveUserPost(ctx context.Context, userID, postID string) error {
	return r.userPosts.Remove(ctx, userID, postID)
}

func (r *KVPostRepository) DropUserPosts(ctx context.Context, userID string) error {
	return r.userPosts.Drop(ctx, userID)
}
