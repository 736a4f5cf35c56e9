package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthmate/backend/common"
	hmerrors "healthmate/backend/common/errors"
	"healthmate/backend/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = hmerrors.New(hmerrors.ErrInvalidCredentials, "Invalid email or password")
	ErrEmailTaken         = hmerrors.New(hmerrors.ErrEmailTaken, "Email is already registered")
	ErrUserDisabled       = hmerrors.New(hmerrors.ErrUserDisabled, "User has been disabled")
	ErrUserNotFound       = hmerrors.New(hmerrors.ErrUserNotFound, "User not found")
	ErrInvalidToken       = hmerrors.New(hmerrors.ErrInvalidToken, "Invalid or expired token")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTClaims are the claims carried by both access and refresh tokens.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      int    `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// Register creates an enabled common user with a bcrypt-hashed password.
func Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	email := model.NormalizeEmail(req.Email)
	if _, err := model.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := common.Password2Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     email,
		Password:  hash,
		Role:      common.RoleCommonUser,
		Status:    common.UserStatusEnabled,
		CreatedAt: time.Now().UTC(),
	}
	if err := model.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues an access and a refresh token.
func Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := model.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !common.ValidatePasswordAndHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsEnabled() {
		return nil, ErrUserDisabled
	}

	token, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, RefreshToken: refreshToken, User: user}, nil
}

func GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := model.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func newClaims(user *model.User, tokenType string, ttl time.Duration) JWTClaims {
	now := time.Now()
	return JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    common.TokenIssuer,
			Subject:   user.ID,
		},
	}
}

func sign(claims JWTClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func parse(tokenString string, secret string, tokenType string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(common.TokenIssuer),
	)
	if err != nil {
		return nil, hmerrors.Wrap(err, hmerrors.ErrInvalidToken, "Invalid or expired token")
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.TokenType != tokenType || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateToken issues an access token for user.
func GenerateToken(user *model.User) (string, error) {
	return sign(newClaims(user, tokenTypeAccess, common.AccessTokenTTL), common.JWTSecret)
}

func ValidateToken(tokenString string) (*JWTClaims, error) {
	return parse(tokenString, common.JWTSecret, tokenTypeAccess)
}

func GenerateRefreshToken(user *model.User) (string, error) {
	return sign(newClaims(user, tokenTypeRefresh, common.RefreshTokenTTL), common.JWTRefreshSecret)
}

func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return parse(tokenString, common.JWTRefreshSecret, tokenTypeRefresh)
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// account must still exist and be enabled.
func RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	user, err := model.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsEnabled() {
		return "", ErrUserDisabled
	}
	return GenerateToken(user)
}

// Logout blacklists the access token until it would have expired. Without
// Redis tokens stay valid until expiry and Logout is a no-op.
func Logout(ctx context.Context, tokenString string, claims *JWTClaims) error {
	if !common.RedisEnabled || common.RDB == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return common.RedisSet(ctx, TokenBlacklistKey(tokenString), "1", ttl)
}

func IsTokenBlacklisted(ctx context.Context, tokenString string) bool {
	if !common.RedisEnabled || common.RDB == nil {
		return false
	}
	blacklisted, err := common.RedisExists(ctx, TokenBlacklistKey(tokenString))
	if err != nil {
		common.SysError("failed to check token blacklist", "err", err)
		return false
	}
	return blacklisted
}
