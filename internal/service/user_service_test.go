package service

import (
	"context"
	"testing"

	"Airwave/internal/api/config"
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/pkg/security"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *fakeUserRepo) Insert(_ context.Context, user *model.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *user
	cp.ID = id
	s.users[id] = &cp
	return id, nil
}

func (s *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newUserService(t *testing.T) UserService {
	t.Helper()
	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1}}
	return NewUserService(newFakeUserRepo())
}

func TestUserRegisterAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterDTO{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, []string{model.RoleAdmin}, registered.User.Roles)

	claims, err := security.ValidateToken(registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.UserID)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterDTO{Username: "admin", Password: "whatever pass"})
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		logged, err := svc.Login(ctx, &dto.CredentialDTO{Username: "admin", Password: "correct horse"})
		require.NoError(t, err)
		require.NotEmpty(t, logged.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Username: "admin", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Username: "ghost", Password: "whatever"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserMe(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterDTO{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, registered.User.ID)
	require.NoError(t, err)
	require.Equal(t, "admin", me.Username)

	_, err = svc.Me(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Me(ctx, "bad")
	require.ErrorIs(t, err, ErrInvalidID)
}
