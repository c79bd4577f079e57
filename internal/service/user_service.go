package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// UserService manages customer accounts.
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("user with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := model.User{
		UUID:         uuid.New(),
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Picture:      req.Picture,
		IsDelinquent: req.IsDelinquent,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}

	log.Info().Str("user_uuid", u.UUID.String()).Str("email", u.Email).Msg("user created")
	return userToResponse(&u), nil
}

func (s *userService) FindByUUID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return userToResponse(u), nil
}

func (s *userService) List(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, total, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Firstname != nil {
		u.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		u.Lastname = *req.Lastname
	}
	if req.Picture != nil {
		u.Picture = req.Picture
	}
	if req.IsDelinquent != nil {
		u.IsDelinquent = *req.IsDelinquent
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return userToResponse(u), nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, u); err != nil {
		return err
	}
	log.Info().Str("user_uuid", id.String()).Msg("user deleted")
	return nil
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user with UUID %s not found", id)
		}
		return nil, err
	}
	return u, nil
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		UUID:         u.UUID.String(),
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		Picture:      u.Picture,
		IsDelinquent: u.IsDelinquent,
		CreatedAt:    u.CreatedAt,
	}
}
