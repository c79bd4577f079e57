package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/config"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// Claims is the JWT payload for API access tokens.
type Claims struct {
	UserUUID string `json:"user_uuid"`
	Email    string `json:"email"`
	Refresh  bool   `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// AuthService handles credential verification and token issuance.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.InvalidArgument("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Msg("failed login attempt")
		return nil, apierror.InvalidArgument("invalid email or password")
	}

	return s.issueTokens(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || !claims.Refresh {
		return nil, apierror.InvalidArgument("invalid refresh token")
	}

	userUUID, err := uuid.Parse(claims.UserUUID)
	if err != nil {
		return nil, apierror.InvalidArgument("invalid refresh token")
	}
	u, err := s.repo.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.InvalidArgument("invalid refresh token")
		}
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *authService) issueTokens(u *model.User) (*dto.TokenResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	refreshTTL := time.Duration(s.cfg.JWTRefreshHours) * time.Hour
	now := time.Now()

	access, err := s.signToken(u, now, accessTTL, false)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(u, now, refreshTTL, true)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         *userToResponse(u),
	}, nil
}

func (s *authService) signToken(u *model.User, now time.Time, ttl time.Duration, refresh bool) (string, error) {
	claims := Claims{
		UserUUID: u.UUID.String(),
		Email:    u.Email,
		Refresh:  refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UUID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
