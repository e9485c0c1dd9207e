package services

import (
	"context"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
)

// SocialGraph owns follow edges. Each edge is stored twice, in the actor's
// following list and the target's followers list, with two independent
// writes. A failure between them leaves a one-sided edge that the next
// follow or unfollow between the pair repairs.
type SocialGraph struct {
	users repositories.UserRepository
}

// NewSocialGraph creates a new SocialGraph
func NewSocialGraph(users repositories.UserRepository) *SocialGraph {
	return &SocialGraph{users: users}
}

// Follow makes actorID follow targetID. It reports whether the actor's
// following set changed; following a current followee is a no-op.
func (g *SocialGraph) Follow(ctx context.Context, actorID, targetID string) (bool, error) {
	if !models.IsValidID(targetID) {
		return false, apperr.InvalidArgument("invalid target user id %q", targetID)
	}
	if actorID == targetID {
		return false, apperr.InvalidArgument("cannot follow yourself")
	}
	target, found, err := g.users.GetProfile(ctx, targetID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, apperr.NotFound("user %s not found", targetID)
	}
	actor, _, err := g.users.GetProfile(ctx, actorID)
	if err != nil {
		return false, err
	}

	changed := false
	if !actor.IsFollowing(targetID) {
		actor.Following = append(actor.Following, targetID)
		if err := g.users.SaveProfile(ctx, actor); err != nil {
			return false, err
		}
		changed = true
	}
	if !target.HasFollower(actorID) {
		target.Followers = append(target.Followers, actorID)
		if err := g.users.SaveProfile(ctx, target); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// Unfollow removes the actorID -> targetID edge from both sides. Unfollowing
// someone not followed is a no-op.
func (g *SocialGraph) Unfollow(ctx context.Context, actorID, targetID string) error {
	if !models.IsValidID(targetID) {
		return apperr.InvalidArgument("invalid target user id %q", targetID)
	}
	actor, _, err := g.users.GetProfile(ctx, actorID)
	if err != nil {
		return err
	}
	if remaining, removed := without(actor.Following, targetID); removed {
		actor.Following = remaining
		if err := g.users.SaveProfile(ctx, actor); err != nil {
			return err
		}
	}

	target, found, err := g.users.GetProfile(ctx, targetID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if remaining, removed := without(target.Followers, actorID); removed {
		target.Followers = remaining
		return g.users.SaveProfile(ctx, target)
	}
	return nil
}

// IsMutualFollow reports whether a and b each list the other in their
// following sets. Followers lists are not consulted.
func (g *SocialGraph) IsMutualFollow(ctx context.Context, a, b string) (bool, error) {
	pa, _, err := g.users.GetProfile(ctx, a)
	if err != nil {
		return false, err
	}
	if !pa.IsFollowing(b) {
		return false, nil
	}
	pb, _, err := g.users.GetProfile(ctx, b)
	if err != nil {
		return false, err
	}
	return pb.IsFollowing(a), nil
}

// Following lists the profiles userID follows. Ids without a stored profile are skipped.
func (g *SocialGraph) Following(ctx context.Context, userID string) ([]models.UserCompact, error) {
	p, err := g.existingProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.compacts(ctx, p.Following)
}

// Followers lists the profiles following userID. Ids without a stored profile are skipped.
func (g *SocialGraph) Followers(ctx context.Context, userID string) ([]models.UserCompact, error) {
	p, err := g.existingProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.compacts(ctx, p.Followers)
}

func (g *SocialGraph) existingProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if !models.IsValidID(userID) {
		return nil, apperr.InvalidArgument("invalid user id %q", userID)
	}
	p, found, err := g.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	return p, nil
}

func (g *SocialGraph) compacts(ctx context.Context, ids []string) ([]models.UserCompact, error) {
	out := make([]models.UserCompact, 0, len(ids))
	for _, id := range ids {
		p, found, err := g.users.GetProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, p.ToCompact())
		}
	}
	return out, nil
}

func without(list []string, v string) ([]string, bool) {
	out := make([]string, 0, len(list))
	removed := false
	for _, s := range list {
		if s == v {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out, removed
}
