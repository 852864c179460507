package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"userapi/internal/cache"
	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/repository"
)

const defaultUserCacheTTL = 5 * time.Minute

// UserInput carries the mutable fields of a user.
type UserInput struct {
	Name        string `json:"name" validate:"required" example:"Samwel"`
	Email       string `json:"email" validate:"required" example:"samwe@gmail.com"`
	Designation string `json:"designation" validate:"required" example:"s.j.Fumbi"`
}

// UserService exposes the user operations behind the HTTP handlers.
type UserService interface {
	// ListUsers returns every user, or ErrUsersNotFound when there are none.
	ListUsers(ctx context.Context) ([]model.User, error)
	// CreateUser stores a new user. It returns ErrMissingFields when any field is empty
	// and ErrUserAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, in UserInput) (*model.User, error)
	// GetUser returns ErrUserNotFound for an unknown id.
	GetUser(ctx context.Context, id uint) (*model.User, error)
	// UpdateUser overwrites name, email and designation together.
	UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	// DeleteAllUsers returns ErrUsersNotFound when there is nothing to delete.
	DeleteAllUsers(ctx context.Context) error
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	ttl      time.Duration
	validate *validator.Validate
	log      *zap.Logger
}

// NewUserService builds a UserService with repository and cache. cache may be nil.
// Cache failures never fail a request; they are logged on log and served from the repository.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration, log *zap.Logger) UserService {
	if ttl <= 0 {
		ttl = defaultUserCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		validate: validator.New(),
		log:      log,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrUsersNotFound
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.ErrMissingFields
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.ErrUserAlreadyExists
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	user := &model.User{
		Name:        in.Name,
		Email:       in.Email,
		Designation: in.Designation,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent create can pass the lookup; the unique index has the final word.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	key := s.cacheKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	if data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.log.Warn("cache entry undecodable, reading from store", zap.String("key", key))
	}

	// The version is taken before the store read so a write landing in between keeps this read out of the cache.
	version, verErr := s.cache.Version(ctx, key)
	if verErr != nil {
		s.log.Warn("cache version read failed", zap.String("key", key), zap.Error(verErr))
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if verErr == nil {
		if payload, err := json.Marshal(user); err == nil {
			if _, err := s.cache.SetIfVersion(ctx, key, payload, s.ttl, version); err != nil {
				s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Designation = in.Designation
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) DeleteAllUsers(ctx context.Context) error {
	users, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return apperrors.ErrUsersNotFound
	}
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}

	keys := make([]string, 0, len(users))
	for _, u := range users {
		keys = append(keys, s.cacheKey(u.ID))
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (s *userService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *userService) findUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
