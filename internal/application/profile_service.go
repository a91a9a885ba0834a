package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"devconnect/internal/domain/entity"
	repo "devconnect/internal/domain/repository"
	"devconnect/pkg/helpers"
)

const profileListCacheKey = "profiles:all"

// Owner is the joined-in name/avatar of the user a profile belongs to.
type Owner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProfileView is a profile with its owner joined in, the shape every read
// and mutation returns to callers.
type ProfileView struct {
	entity.Profile
	Owner Owner `json:"owner"`
}

// ProfileService owns the profile lifecycle. Every mutation resolves its
// target from the authenticated identity, never from request data.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger

	Redis    *redis.Client
	CacheTTL time.Duration

	ES      *elasticsearch.Client
	ESIndex string
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, logger *logrus.Logger, rdb *redis.Client, cacheTTL time.Duration, es *elasticsearch.Client, esIndex string) *ProfileService {
	return &ProfileService{
		Profiles: profiles,
		Users:    users,
		Logger:   logger,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		ES:       es,
		ESIndex:  esIndex,
	}
}

// UpsertProfileInput carries the partial field set of a create/update request.
// Status and Skills are mandatory; nil pointers mean the field was absent and
// must not overwrite a stored value.
type UpsertProfileInput struct {
	Status string
	Skills string

	Company    *string
	Website    *string
	Location   *string
	Bio        *string
	GithubUser *string

	Youtube   *string
	Twitter   *string
	Facebook  *string
	Linkedin  *string
	Instagram *string
}

// buildFieldSet maps only the fields present in the request onto dotted
// document paths. Social links nest under the social sub-record.
func buildFieldSet(in UpsertProfileInput) map[string]any {
	fields := map[string]any{
		"status": in.Status,
		"skills": parseSkills(in.Skills),
	}

	opt := func(path string, v *string) {
		if v != nil && *v != "" {
			fields[path] = *v
		}
	}
	opt("company", in.Company)
	opt("website", in.Website)
	opt("location", in.Location)
	opt("bio", in.Bio)
	opt("githubusername", in.GithubUser)

	opt("social.youtube", in.Youtube)
	opt("social.twitter", in.Twitter)
	opt("social.facebook", in.Facebook)
	opt("social.linkedin", in.Linkedin)
	opt("social.instagram", in.Instagram)

	return fields
}

// parseSkills turns "js, go , rust" into ["js","go","rust"], order preserved.
func parseSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// UpsertProfile creates or partially updates the caller's profile in one
// atomic store operation keyed by the owning identity.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, in UpsertProfileInput) (*ProfileView, error) {
	p, err := s.Profiles.Upsert(ctx, userID, buildFieldSet(in))
	if err != nil {
		return nil, err
	}

	view := s.withOwner(ctx, p)
	s.invalidateListCache(ctx)
	s.indexProfile(ctx, view)
	return view, nil
}

// GetOwnProfile resolves the caller's profile with owner name/avatar joined in.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*ProfileView, error) {
	p, err := s.Profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, p), nil
}

// GetProfileByUser is the public lookup; malformed identifiers collapse to the
// same not-found outcome as well-formed-but-absent ones.
func (s *ProfileService) GetProfileByUser(ctx context.Context, userID string) (*ProfileView, error) {
	p, err := s.Profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, p), nil
}

// ListProfiles returns every profile with owners joined in, served from a
// short-lived redis cache when warm.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]ProfileView, error) {
	if s.Redis != nil {
		var cached []ProfileView
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, profileListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID.Hex())
	}
	owners, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		v := ProfileView{Profile: p}
		if u, ok := owners[p.UserID.Hex()]; ok {
			v.Owner = Owner{ID: u.ID.Hex(), Name: u.Name, Avatar: u.Avatar}
		}
		views = append(views, v)
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileListCacheKey, views, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache profile list failed")
		}
	}
	return views, nil
}

// AddExperience prepends an entry to the caller's experience list. The
// profile must already exist.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*ProfileView, error) {
	p, err := s.Profiles.AddExperience(ctx, userID, exp)
	if err != nil {
		return nil, err
	}

	view := s.withOwner(ctx, p)
	s.invalidateListCache(ctx)
	s.indexProfile(ctx, view)
	return view, nil
}

// DeleteOwnAccount removes the caller's profile and then the user record.
// If the profile delete fails the user record is left untouched.
func (s *ProfileService) DeleteOwnAccount(ctx context.Context, userID string) error {
	if err := s.Profiles.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.deleteIndexed(ctx, userID)
	return nil
}

// SearchProfiles runs a multi_match query over the indexed profile fields.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"skills^2", "status", "name", "bio", "location", "company"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ProfileService) withOwner(ctx context.Context, p *entity.Profile) *ProfileView {
	view := &ProfileView{Profile: *p}
	u, err := s.Users.GetByID(ctx, p.UserID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.UserID.Hex()).Warn("profile owner lookup failed")
		}
		return view
	}
	view.Owner = Owner{ID: u.ID.Hex(), Name: u.Name, Avatar: u.Avatar}
	return view
}

func (s *ProfileService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profileListCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("invalidate profile list cache failed")
	}
}

// indexProfile mirrors the profile into Elasticsearch for search. Best effort:
// indexing failures never fail the request.
func (s *ProfileService) indexProfile(ctx context.Context, v *ProfileView) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"user":     v.UserID.Hex(),
		"name":     v.Owner.Name,
		"avatar":   v.Owner.Avatar,
		"status":   v.Status,
		"skills":   v.Skills,
		"bio":      v.Bio,
		"location": v.Location,
		"company":  v.Company,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: v.UserID.Hex(),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", v.UserID.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", v.UserID.Hex()).Warn("es index response error")
	}
}

func (s *ProfileService) deleteIndexed(ctx context.Context, userID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: userID}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
