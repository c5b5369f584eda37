package usecase

import (
	"context"
	"errors"
	"fmt"

	"dentalcare-booking/config"
	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthUsecase authenticates the single admin account configured for the
// clinic. Issued tokens are tracked in Redis so logout revokes them before
// expiry.
type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, username, tokenID string) error
}

type authUsecase struct {
	log         *logrus.Logger
	adminConfig config.AdminConfig
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthUsecase(
	log *logrus.Logger,
	adminConfig config.AdminConfig,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		adminConfig: adminConfig,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Username != u.adminConfig.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.adminConfig.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		u.log.Errorf("Failed to generate access token: %+v", err)
		return nil, err
	}

	tokenKey := AccessTokenKey(req.Username, tokenID)
	if err := u.redisClient.Set(ctx, tokenKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Errorf("Failed to store access token: %+v", err)
		return nil, err
	}

	u.log.Infof("Admin logged in: %s", req.Username)
	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, username, tokenID string) error {
	if err := u.redisClient.Del(ctx, AccessTokenKey(username, tokenID)).Err(); err != nil {
		u.log.Errorf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

// AccessTokenKey is the Redis key tracking a live (non-revoked) admin token.
func AccessTokenKey(username, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", username, tokenID)
}
