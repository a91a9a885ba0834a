package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, userID string, fields map[string]any) (*entity.Profile, error) {
	args := m.Called(ctx, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	args := m.Called(ctx, userID, exp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newProfileService(profiles *MockProfileRepository, users *MockUserRepository) *ProfileService {
	return NewProfileService(profiles, users, nil, nil, 0, nil, "")
}

func strp(s string) *string { return &s }

func TestBuildFieldSet(t *testing.T) {
	t.Run("mandatory fields only", func(t *testing.T) {
		fields := buildFieldSet(UpsertProfileInput{Status: "Dev", Skills: "js, go , rust"})
		assert.Equal(t, map[string]any{
			"status": "Dev",
			"skills": []string{"js", "go", "rust"},
		}, fields)
	})

	t.Run("absent optional fields never appear", func(t *testing.T) {
		fields := buildFieldSet(UpsertProfileInput{
			Status: "Dev",
			Skills: "js",
			Bio:    strp("hi"),
		})
		assert.Equal(t, "hi", fields["bio"])
		_, hasCompany := fields["company"]
		assert.False(t, hasCompany, "absent field must not overwrite a stored value")
	})

	t.Run("social links nest under dotted paths", func(t *testing.T) {
		fields := buildFieldSet(UpsertProfileInput{
			Status:  "Dev",
			Skills:  "js",
			Twitter: strp("https://twitter.com/dev"),
		})
		assert.Equal(t, "https://twitter.com/dev", fields["social.twitter"])
		_, hasYoutube := fields["social.youtube"]
		assert.False(t, hasYoutube)
	})
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"js", "go", "rust"}, parseSkills("js, go , rust"))
	assert.Equal(t, []string{"solo"}, parseSkills("solo"))
	// empty split results are the caller's responsibility, not filtered here
	assert.Equal(t, []string{"js", ""}, parseSkills("js,"))
}

func TestProfileService_UpsertProfile(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()
	owner := &entity.User{ID: uid, Name: "Dev", Avatar: "https://example.com/a.png"}

	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	svc := newProfileService(profiles, users)

	stored := &entity.Profile{UserID: uid, Status: "Dev", Skills: []string{"js", "go", "rust"}}
	profiles.On("Upsert", ctx, uid.Hex(), mock.Anything).Return(stored, nil)
	users.On("GetByID", ctx, uid.Hex()).Return(owner, nil)

	view, err := svc.UpsertProfile(ctx, uid.Hex(), UpsertProfileInput{Status: "Dev", Skills: "js, go , rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "go", "rust"}, view.Skills)
	assert.Equal(t, "Dev", view.Owner.Name)
	assert.Equal(t, owner.Avatar, view.Owner.Avatar)

	// the repository receives only the fields present in the request
	sent := profiles.Calls[0].Arguments.Get(2).(map[string]any)
	assert.Equal(t, []string{"js", "go", "rust"}, sent["skills"])
	_, hasBio := sent["bio"]
	assert.False(t, hasBio)
}

func TestProfileService_GetOwnProfile_NotFound(t *testing.T) {
	ctx := context.Background()

	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	svc := newProfileService(profiles, users)

	profiles.On("GetByUser", ctx, "whoever").Return(nil, repository.ErrNotFound)

	_, err := svc.GetOwnProfile(ctx, "whoever")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileService_ListProfiles(t *testing.T) {
	ctx := context.Background()
	uid1 := primitive.NewObjectID()
	uid2 := primitive.NewObjectID()

	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	svc := newProfileService(profiles, users)

	profiles.On("List", ctx).Return([]entity.Profile{
		{UserID: uid1, Status: "Dev"},
		{UserID: uid2, Status: "Designer"},
	}, nil)
	users.On("GetByIDs", ctx, []string{uid1.Hex(), uid2.Hex()}).Return(map[string]*entity.User{
		uid1.Hex(): {ID: uid1, Name: "Alice", Avatar: "a"},
		uid2.Hex(): {ID: uid2, Name: "Bob", Avatar: "b"},
	}, nil)

	views, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Alice", views[0].Owner.Name)
	assert.Equal(t, "Bob", views[1].Owner.Name)
}

func TestProfileService_AddExperience(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()
	owner := &entity.User{ID: uid, Name: "Dev"}

	e1 := entity.Experience{Title: "Junior", Company: "Acme", From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	e2 := entity.Experience{Title: "Senior", Company: "Acme", From: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}

	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	svc := newProfileService(profiles, users)

	// the store prepends, so the returned document is newest-first
	profiles.On("AddExperience", ctx, uid.Hex(), e2).Return(&entity.Profile{
		UserID:     uid,
		Experience: []entity.Experience{e2, e1},
	}, nil)
	users.On("GetByID", ctx, uid.Hex()).Return(owner, nil)

	view, err := svc.AddExperience(ctx, uid.Hex(), e2)
	require.NoError(t, err)
	require.Len(t, view.Experience, 2)
	assert.Equal(t, "Senior", view.Experience[0].Title)
	assert.Equal(t, "Junior", view.Experience[1].Title)
}

func TestProfileService_AddExperience_NoProfile(t *testing.T) {
	ctx := context.Background()

	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	svc := newProfileService(profiles, users)

	profiles.On("AddExperience", ctx, "uid", mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := svc.AddExperience(ctx, "uid", entity.Experience{Title: "Dev", Company: "Acme"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileService_DeleteOwnAccount(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID().Hex()

	t.Run("profile then user", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		users := new(MockUserRepository)
		svc := newProfileService(profiles, users)

		profiles.On("DeleteByUser", ctx, uid).Return(nil)
		users.On("Delete", ctx, uid).Return(nil)

		require.NoError(t, svc.DeleteOwnAccount(ctx, uid))
		profiles.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("profile delete failure leaves the user record alone", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		users := new(MockUserRepository)
		svc := newProfileService(profiles, users)

		profiles.On("DeleteByUser", ctx, uid).Return(errors.New("store down"))

		err := svc.DeleteOwnAccount(ctx, uid)
		require.Error(t, err)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
