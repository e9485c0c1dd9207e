package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Account statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusBanned    = "banned"
)

// Profile is the canonical user record stored at user:<id>. Reads always go
// through NormalizeProfile, so every collection is non-nil.
type Profile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Bio       string     `json:"bio"`
	Location  string     `json:"location"`
	AvatarURL string     `json:"avatar_url"`
	Skills    []string   `json:"skills"`
	Followers []string   `json:"followers"`
	Following []string   `json:"following"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	// AuthUID is the identity provider's uid when it differs from ID.
	AuthUID string `json:"auth_uid,omitempty"`
}

// IsFollowing reports whether p lists target in its following set.
func (p *Profile) IsFollowing(target string) bool {
	return contains(p.Following, target)
}

// HasFollower reports whether p lists follower in its followers set.
func (p *Profile) HasFollower(follower string) bool {
	return contains(p.Followers, follower)
}

// CanManageGroups reports whether the profile may create group conversations.
func (p *Profile) CanManageGroups() bool {
	return p.Role == RoleInstructor || p.Role == RoleAdmin
}

// UserCompact is the public summary of a profile embedded in list responses.
type UserCompact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

func (p *Profile) ToCompact() UserCompact {
	return UserCompact{ID: p.ID, Name: p.Name, Role: p.Role, AvatarURL: p.AvatarURL}
}

// UpdateProfileRequest defines the editable profile fields. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Bio       *string  `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string  `json:"location,omitempty" validate:"omitempty,max=120"`
	AvatarURL *string  `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Skills    []string `json:"skills,omitempty" validate:"omitempty,max=30,dive,min=1,max=50"`
}

// FollowRequest is the body of follow/unfollow calls.
type FollowRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
}

// JwtCustomClaims are the bearer token claims. Subject carries the user id.
type JwtCustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
