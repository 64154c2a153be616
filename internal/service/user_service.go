package service

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/pkg/consts"
	"Airwave/internal/pkg/redis"
	"Airwave/internal/pkg/security"
	"Airwave/internal/repository"
	"context"
	"time"
)

type UserService interface {
	Register(ctx context.Context, d *dto.RegisterDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, d *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, tokenString string) error
	Me(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, d *dto.RegisterDTO) (*dto.TokenDTO, error) {
	existing, err := s.userRepo.FindByUsername(ctx, d.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := security.HashPassword(d.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     d.Username,
		PasswordHash: hash,
		Roles:        []string{model.RoleAdmin},
		CreatedAt:    time.Now(),
	}
	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	return s.issueToken(user)
}

func (s *userServiceImpl) Login(ctx context.Context, d *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, d.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err = security.CheckPasswordHash(d.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Logout 将 Token 签名加入黑名单，有效期对齐 Token 剩余寿命
func (s *userServiceImpl) Logout(ctx context.Context, tokenString string) error {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return ErrInvalidCredentials
	}

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return ErrInvalidCredentials
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenDenyPrefix+signature, "1", ttl)
}

func (s *userServiceImpl) Me(ctx context.Context, userID string) (*dto.UserDTO, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserDTO{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Roles:    user.Roles,
	}, nil
}

func (s *userServiceImpl) issueToken(user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID.Hex(), user.Roles)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{
		Token: token,
		User: dto.UserDTO{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Roles:    user.Roles,
		},
	}, nil
}
