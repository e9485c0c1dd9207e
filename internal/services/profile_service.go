package services

import (
	"context"
	"time"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
)

// IdentityDeleter removes a user from the identity provider.
// *auth.Client from the Firebase Admin SDK satisfies it.
type IdentityDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Identity is the caller as resolved from the bearer token.
type Identity struct {
	UserID  string
	AuthUID string
	Email   string
	Name    string
}

// ProfileService reads and edits profiles.
type ProfileService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	convs    repositories.ConversationRepository
	identity IdentityDeleter
}

// NewProfileService creates a new ProfileService. identity may be nil, in
// which case admin deletes only remove stored records.
func NewProfileService(users repositories.UserRepository, posts repositories.PostRepository, convs repositories.ConversationRepository, identity IdentityDeleter) *ProfileService {
	return &ProfileService{users: users, posts: posts, convs: convs, identity: identity}
}

// StartSession creates the caller's profile on first sign-in and records the login time.
func (s *ProfileService) StartSession(ctx context.Context, id Identity) (*models.Profile, error) {
	p, found, err := s.users.GetProfile(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if p.Status == models.StatusBanned {
		return nil, apperr.Forbidden("account is banned")
	}
	if !found {
		p.Email = id.Email
		p.Name = id.Name
	}
	if p.Email == "" {
		p.Email = id.Email
	}
	if id.AuthUID != "" && id.AuthUID != id.UserID {
		p.AuthUID = id.AuthUID
	}
	now := time.Now().UTC()
	p.LastLogin = &now
	if err := s.users.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the stored profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if !models.IsValidID(userID) {
		return nil, apperr.InvalidArgument("invalid user id %q", userID)
	}
	p, found, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	return p, nil
}

// Me returns the caller's profile, normalized even if nothing is stored yet.
func (s *ProfileService) Me(ctx context.Context, userID string) (*models.Profile, error) {
	p, _, err := s.users.GetProfile(ctx, userID)
	return p, err
}

// Update applies the caller's profile edits. Graph fields are never touched here.
func (s *ProfileService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	p, _, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}
	if req.Skills != nil {
		p.Skills = req.Skills
	}
	if err := s.users.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AdminDelete removes targetID's profile, its index records and, when an
// identity provider is configured, the backing identity. Posts and
// conversations the user took part in are left in place.
func (s *ProfileService) AdminDelete(ctx context.Context, actorID, targetID string) error {
	actor, _, err := s.users.GetProfile(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return apperr.Forbidden("admin role required")
	}
	target, err := s.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.users.DeleteProfile(ctx, targetID); err != nil {
		return err
	}
	if err := s.posts.DropUserPosts(ctx, targetID); err != nil {
		return err
	}
	if err := s.convs.DropUserConversations(ctx, targetID); err != nil {
		return err
	}
	if s.identity != nil {
		uid := target.AuthUID
		if uid == "" {
			uid = target.ID
		}
		if err := s.identity.DeleteUser(ctx, uid); err != nil {
			return apperr.Wrap(apperr.KindInternal, err, "delete identity %s", uid)
		}
	}
	return nil
}
