package models

import (
	"time"

	"github.com/google/uuid"
)

// now is swapped in tests.
var now = time.Now

// NormalizeProfile turns a stored, possibly partial user record into a
// complete Profile. It never fails: missing or mistyped fields take their
// defaults, collections become empty and de-duplicated, and the id falls
// back to fallbackID unless the stored one is a valid UUID. created_at is
// only defaulted to the current time when the field is absent.
func NormalizeProfile(raw map[string]any, fallbackID string) Profile {
	p := Profile{
		ID:        fallbackID,
		Email:     stringField(raw, "email"),
		Name:      stringField(raw, "name"),
		Role:      oneOf(stringField(raw, "role"), RoleStudent, RoleStudent, RoleInstructor, RoleAdmin),
		Bio:       stringField(raw, "bio"),
		Location:  stringField(raw, "location"),
		AvatarURL: stringField(raw, "avatar_url"),
		Skills:    stringList(raw, "skills", false),
		Followers: stringList(raw, "followers", true),
		Following: stringList(raw, "following", true),
		Status:    oneOf(stringField(raw, "status"), StatusActive, StatusActive, StatusSuspended, StatusBanned),
		AuthUID:   stringField(raw, "auth_uid"),
	}
	if id := stringField(raw, "id"); IsValidID(id) {
		p.ID = id
	}
	if v, ok := raw["created_at"]; ok && v != nil {
		p.CreatedAt, _ = timeValue(v)
	} else {
		p.CreatedAt = now().UTC()
	}
	if t, ok := timeValue(raw["last_login"]); ok {
		p.LastLogin = &t
	}
	return p
}

// IDForAuthUID maps an identity provider uid to a user id. UUID uids are
// used as-is; anything else gets a stable name-based UUID.
func IDForAuthUID(uid string) string {
	if IsValidID(uid) {
		return uid
	}
	return uuid.NewSHA1(authNamespace, []byte(uid)).String()
}

var authNamespace = uuid.MustParse("5b0e7c1d-2f7a-4f43-9d1e-6c1a3b8e2d40")

// IsValidID reports whether id is a well-formed UUID.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NormalizePost fills the collections and defaults of a decoded post in place.
func NormalizePost(p *Post) {
	if p.Type == "" {
		p.Type = PostTypePost
	}
	if p.Privacy == "" {
		p.Privacy = PrivacyPublic
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Likes = dedupe(p.Likes)
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	if p.Type == PostTypeRecipe && p.Ratings == nil {
		p.Ratings = []Rating{}
	}
}

// NormalizeConversation fills the collections and defaults of a decoded conversation in place.
func NormalizeConversation(c *Conversation) {
	if c.Type == "" {
		c.Type = ConversationDirect
	}
	c.Participants = dedupe(c.Participants)
	if c.Messages == nil {
		c.Messages = []Message{}
	}
	if c.Type == ConversationGroup {
		c.RequestStatus = nil
		if c.ParticipantRoles == nil {
			c.ParticipantRoles = map[string]string{}
		}
	}
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func oneOf(v, def string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// stringList reads a JSON array of strings, skipping anything that is not a
// non-empty string. Sets are additionally de-duplicated.
func stringList(raw map[string]any, key string, set bool) []string {
	out := []string{}
	var items []any
	switch v := raw[key].(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			continue
		}
		if set {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
