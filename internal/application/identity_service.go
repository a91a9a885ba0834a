package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"devconnect/internal/domain/entity"
	repo "devconnect/internal/domain/repository"
	"devconnect/pkg/helpers"
	"devconnect/pkg/mailer"
)

// IdentityService owns registration, login and the authenticated user's own
// account surface. The credential it issues carries the user id only.
type IdentityService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	BcryptCost  int
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	GCS         *storage.Client
	GCSBucket   string
}

func NewIdentityService(users repo.UserRepository, jwt *helpers.JWTManager, bcryptCost int, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool, gcs *storage.Client, gcsBucket string) *IdentityService {
	return &IdentityService{
		Users:       users,
		JWT:         jwt,
		BcryptCost:  bcryptCost,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
	}
}

// Register creates a user and returns a signed credential. The avatar URL is
// derived from the email; the password is stored only as a bcrypt hash.
func (s *IdentityService) Register(ctx context.Context, name, email, password string) (string, error) {
	if existing, err := s.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return "", err
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return "", err
	}

	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   helpers.GravatarURL(email),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// The unique index closes the check-then-insert window.
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	token, _, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("sign token failed")
		}
		return "", err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return token, nil
}

// Login verifies email/password and issues a fresh credential.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("sign token failed")
		}
		return "", err
	}
	return token, nil
}

// CurrentUser resolves the authenticated identity to its user record.
func (s *IdentityService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// UploadAvatar stores a custom avatar in GCS and points the user at it,
// replacing the derived gravatar URL.
func (s *IdentityService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))

	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *IdentityService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}
