package models

import "time"

// Post types
const (
	PostTypePost   = "post"
	PostTypeRecipe = "recipe"
)

// Privacy tiers
const (
	PrivacyPublic    = "public"
	PrivacyFollowers = "followers"
	PrivacyPrivate   = "private"
)

// Post is stored at post:<id>. Likes, comments and ratings are embedded.
type Post struct {
	ID              string      `json:"id"`
	AuthorID        string      `json:"author_id"`
	AuthorName      string      `json:"author_name"`
	Type            string      `json:"type"`
	Content         string      `json:"content"`
	Images          []string    `json:"images"`
	Video           string      `json:"video,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	Privacy         string      `json:"privacy"`
	Likes           []string    `json:"likes"`
	Comments        []Comment   `json:"comments"`
	Ratings         []Rating    `json:"ratings,omitempty"`
	RecipeData      *RecipeData `json:"recipe_data,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	return contains(p.Likes, userID)
}

// RecipeData holds recipe metadata. Rating is derived: the mean of Post.Ratings.
type RecipeData struct {
	Title      string  `json:"title"`
	Difficulty string  `json:"difficulty,omitempty"`
	Time       string  `json:"time,omitempty"`
	Servings   int     `json:"servings,omitempty"`
	Rating     float64 `json:"rating"`
}

// Rating is one user's 1-5 star score of a recipe post.
type Rating struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Type            string             `json:"type" validate:"omitempty,oneof=post recipe"`
	Content         string             `json:"content" validate:"required,min=1,max=5000"`
	Images          []string           `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Video           string             `json:"video,omitempty" validate:"omitempty,url"`
	BackgroundColor string             `json:"background_color,omitempty" validate:"omitempty,max=32"`
	Privacy         string             `json:"privacy,omitempty" validate:"omitempty,oneof=public followers private"`
	RecipeData      *RecipeDataRequest `json:"recipe_data,omitempty"`
}

// UpdatePostRequest defines the editable fields of a post. Nil fields are left unchanged.
type UpdatePostRequest struct {
	Content         *string            `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Images          []string           `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Video           *string            `json:"video,omitempty" validate:"omitempty,url"`
	BackgroundColor *string            `json:"background_color,omitempty" validate:"omitempty,max=32"`
	Privacy         *string            `json:"privacy,omitempty" validate:"omitempty,oneof=public followers private"`
	RecipeData      *RecipeDataRequest `json:"recipe_data,omitempty"`
}

// RecipeDataRequest is the author-supplied part of RecipeData.
type RecipeDataRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,max=32"`
	Time       string `json:"time,omitempty" validate:"omitempty,max=64"`
	Servings   int    `json:"servings,omitempty" validate:"min=0,max=1000"`
}

// RatePostRequest is the body of the rate endpoint. Range is checked by the aggregator.
type RatePostRequest struct {
	Rating int `json:"rating"`
}
