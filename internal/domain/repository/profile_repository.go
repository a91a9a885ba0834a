package repository

import (
	"context"

	"devconnect/internal/domain/entity"
)

// ProfileRepository defines the interface for profile-related database operations.
// Upsert and AddExperience are single atomic store operations keyed by the owning
// user, so concurrent calls for the same user can never create duplicate profiles.
type ProfileRepository interface {
	// Upsert applies fields as a partial update to the profile owned by userID,
	// creating the document when absent, and returns the resulting profile.
	// fields maps dotted document paths (e.g. "social.youtube") to values;
	// paths not present are left untouched.
	Upsert(ctx context.Context, userID string, fields map[string]any) (*entity.Profile, error)
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
	// AddExperience prepends exp to the experience list of the profile owned by
	// userID and returns the updated profile, or ErrNotFound when none exists.
	AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error)
	DeleteByUser(ctx context.Context, userID string) error
}
