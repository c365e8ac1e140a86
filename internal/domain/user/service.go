package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

// Service handles user operations.
type Service struct {
	repo   Repository
	files  FileStore
	logger *slog.Logger
}

// NewService creates a new user service. files may be nil, which disables
// avatar uploads.
func NewService(repo Repository, files FileStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, files: files, logger: logger}
}

// Register creates a user. Emails are stored lower-cased and must be unique.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}

	u := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		AvatarURL: req.AvatarURL,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes a user's name, phone or avatar. A new avatar is
// stored before the row is written; the previous one is removed afterwards
// when the file store issued it.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		u.Name = name
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}

	previous := u.AvatarURL
	var stored string
	if req.Avatar != nil {
		if len(req.Avatar.Data) == 0 {
			return nil, fmt.Errorf("%w: avatar is empty", ErrInvalidInput)
		}
		if s.files == nil {
			return nil, fmt.Errorf("avatars disabled: no file store configured")
		}
		stored, err = s.files.Store(ctx, req.Avatar.Name, req.Avatar.Data)
		if err != nil {
			return nil, fmt.Errorf("storing avatar: %w", err)
		}
		u.AvatarURL = stored
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if stored != "" {
			if delErr := s.files.Delete(ctx, stored); delErr != nil {
				s.logger.Warn("orphaned avatar file", "locator", stored, "error", delErr)
			}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	if stored != "" && previous != "" {
		s.removeAvatar(ctx, userID, previous)
	}
	return u, nil
}

func (s *Service) removeAvatar(ctx context.Context, userID, locator string) {
	ok, err := s.files.Exists(ctx, locator)
	if err != nil || !ok {
		s.logger.Debug("previous avatar not held by file store", "user_id", userID, "avatar", locator)
		return
	}
	if err := s.files.Delete(ctx, locator); err != nil {
		s.logger.Warn("previous avatar not removed", "user_id", userID, "avatar", locator, "error", err)
	}
}

// List returns every user.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// DisplayName returns the user's name for message formatting.
func (s *Service) DisplayName(ctx context.Context, id string) (string, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

// NormalizeEmail trims and lower-cases an address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
