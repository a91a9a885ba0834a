package handlers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
)

// In-memory repositories for handler tests. They honor the same contracts as
// the mongodb implementations: upsert is keyed by owning user and applies
// dotted-path partial updates, experience prepends.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*entity.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, id, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Avatar = avatarURL
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile // keyed by owning user id
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*entity.Profile{}}
}

func (r *memProfileRepo) Upsert(_ context.Context, userID string, fields map[string]any) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		p = &entity.Profile{ID: primitive.NewObjectID(), UserID: oid, Experience: []entity.Experience{}}
		r.profiles[userID] = p
	}
	for k, v := range fields {
		switch k {
		case "status":
			p.Status = v.(string)
		case "skills":
			p.Skills = v.([]string)
		case "company":
			p.Company = v.(string)
		case "website":
			p.Website = v.(string)
		case "location":
			p.Location = v.(string)
		case "bio":
			p.Bio = v.(string)
		case "githubusername":
			p.GithubUser = v.(string)
		case "social.youtube":
			p.Social.Youtube = v.(string)
		case "social.twitter":
			p.Social.Twitter = v.(string)
		case "social.facebook":
			p.Social.Facebook = v.(string)
		case "social.linkedin":
			p.Social.Linkedin = v.(string)
		case "social.instagram":
			p.Social.Instagram = v.(string)
		}
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) GetByUser(_ context.Context, userID string) (*entity.Profile, error) {
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		return nil, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memProfileRepo) List(_ context.Context) ([]entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProfileRepo) AddExperience(_ context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Experience = append([]entity.Experience{exp}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.ProfileRepository = (*memProfileRepo)(nil)
)
