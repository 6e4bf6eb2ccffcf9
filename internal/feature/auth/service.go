// Package auth 登录、自助注册、登出与当前用户查询。
package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	coreauth "plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/logger"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/feature/user"
	"plantya-platform/internal/repo"
)

const (
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeFieldRequired      = "AUTH_FIELD_REQUIRED"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      user.Response `json:"user"`
}

type Service struct {
	users    *repo.UserRepo
	accounts *user.Service
	jwt      *coreauth.JWTer
	log      *zap.Logger
}

func NewService(db *gorm.DB, accounts *user.Service, j *coreauth.JWTer, l *zap.Logger) *Service {
	return &Service{users: repo.NewUserRepo(db), accounts: accounts, jwt: j, log: l.Named("auth")}
}

// Register 注册成功不自动登录
func (s *Service) Register(ctx context.Context, in user.RegisterRequest) (user.Response, error) {
	u, err := s.accounts.Register(ctx, in)
	if err != nil {
		return user.Response{}, err
	}
	logger.For(ctx, s.log).Info("register", zap.String("userId", u.UserID))
	return u, nil
}

// Logout JWT 无状态，服务端只记录；cookie 由 handler 清除
func (s *Service) Logout(ctx context.Context) {
	logger.For(ctx, s.log).Info("logout")
}

// Login 只认 active 用户；邮箱不存在与密码错误返回同一错误码
func (s *Service) Login(ctx context.Context, in LoginRequest) (LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginResponse{}, apperr.BadRequest(CodeFieldRequired, "email and password are required")
	}
	u, err := s.users.FindByEmail(ctx, email, domain.PartitionActive)
	if err != nil {
		return LoginResponse{}, apperr.Internal(err)
	}
	if u == nil || !coreauth.CheckPassword(in.Password, u.PasswordHash) {
		logger.For(ctx, s.log).Warn("login rejected", zap.String("email", email))
		return LoginResponse{}, apperr.Unauthorized(CodeInvalidCredentials, "email or password is incorrect")
	}
	token, exp, err := s.jwt.Issue(u.UserID, string(u.Role))
	if err != nil {
		return LoginResponse{}, apperr.Internal(err)
	}
	logger.For(ctx, s.log).Info("login", zap.String("userId", u.UserID))
	return LoginResponse{Token: token, ExpiresAt: exp, User: user.ToResponse(*u)}, nil
}

// Me 令牌有效但用户已被删除时按 404 处理
func (s *Service) Me(ctx context.Context, userID string) (user.Response, error) {
	u, err := s.users.FindOne(ctx, userID, domain.PartitionActive)
	if err != nil {
		return user.Response{}, apperr.Internal(err)
	}
	if u == nil {
		return user.Response{}, apperr.NotFound(user.CodeNotFound, "user "+userID+" not found")
	}
	return user.ToResponse(*u), nil
}
