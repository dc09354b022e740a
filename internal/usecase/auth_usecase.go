package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-outreach-service/config"
	"clinic-outreach-service/internal/converter"
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/delivery/http/middleware"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/service"
	"clinic-outreach-service/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	user         entity.User
	passwordHash string
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	syncService  *service.SyncService
}

func NewAuthUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	syncService *service.SyncService,
) AuthUsecase {
	user := entity.User{
		ID:       clinic.UserID,
		Username: clinic.Username,
		Email:    clinic.Email,
		Role:     clinic.Role,
	}
	if user.Role == "" {
		user.Role = entity.RoleNurse
	}

	return &authUsecase{
		log:          log,
		user:         user,
		passwordHash: clinic.PasswordHash,
		jwtService:   jwtService,
		redisClient:  redisClient,
		syncService:  syncService,
	}
}

// Login checks the credentials against the provisioned clinic account,
// issues an access token and registers it in the Redis allow-list. The
// signed-in user becomes the acting user for outward sync.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if !strings.EqualFold(req.Email, u.user.Email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(u.user.ID, u.user.Email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	tokenKey := fmt.Sprintf("access_token:%s:%s", u.user.ID, tokenID)
	if err := u.redisClient.Set(ctx, tokenKey, "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to register access token: %+v", err)
		return nil, err
	}

	u.syncService.SetActingUser(u.user.ID)
	u.log.Infof("User logged in: id=%s", u.user.ID)

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:        *converter.UserToResponse(&u.user),
	}, nil
}

// Logout revokes the current access token and pauses sync attribution
func (u *authUsecase) Logout(ctx context.Context) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	tokenKey := fmt.Sprintf("access_token:%s:%s", userID, tokenID)
	if err := u.redisClient.Del(ctx, tokenKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	u.syncService.SetActingUser("")
	u.log.Infof("User logged out: id=%s", userID)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || userID != u.user.ID {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(&u.user), nil
}
