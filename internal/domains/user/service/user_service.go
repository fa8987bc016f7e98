package service

import (
	"context"
	"strings"
	"time"

	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/domains/user"
	"pvadb-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type userService struct {
	repo       user.Repository
	quotaSvc   quota.Service
	jwtManager *jwt.Manager
}

func NewUserService(repo user.Repository, quotaSvc quota.Service, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		quotaSvc:   quotaSvc,
		jwtManager: jwtManager,
	}
}

// Register creates an account with a bcrypt-hashed password
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", u.ID.String()).
		Msg("User registered")

	dto := u.ToDTO()
	return &dto, nil
}

// Login verifies credentials and issues a token pair
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("Failed to stamp last login")
	}

	return s.issueTokens(u)
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(u)
}

// GetProfile returns the account plus its submission-quota standing
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.ProfileResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	level := s.quotaSvc.ResolveTrustLevel(ctx, u.ID.String())
	limits := quota.LimitsFor(u.IsAdmin(), level)

	return &user.ProfileResponse{
		User:            u.ToDTO(),
		TrustLevel:      level.String(),
		SubmissionsUsed: s.quotaSvc.GetPendingCount(ctx, u.ID.String()),
		SingleLimit:     limits.SingleLimit,
		BulkLimit:       limits.BulkLimit,
	}, nil
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(accessTokenTTL),
		User:         u.ToDTO(),
	}, nil
}
