package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doffpett/evhenter/internal/entity"
	"github.com/doffpett/evhenter/pkg/token"
)

type fakeUserRepo struct {
	users       map[string]*entity.User // keyed by email
	lastLoginID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) addUser(email, password string, active bool) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entity.User{
		ID:           "user-" + email,
		Email:        email,
		Name:         "Kari Nordmann",
		Role:         "user",
		PasswordHash: string(hash),
		IsActive:     active,
	}
	r.users[email] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, email, passwordHash, name string) (*entity.User, error) {
	if _, exists := r.users[email]; exists {
		return nil, entity.ErrEmailTaken
	}
	user := &entity.User{
		ID:           "user-" + email,
		Email:        email,
		Name:         name,
		Role:         "user",
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	r.users[email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	r.lastLoginID = id
	return nil
}

func newAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, token.NewManager("test-secret", time.Hour))
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	user, tokenStr, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Kari@Example.NO",
		Password: "hemmelig123",
		Name:     "Kari Nordmann",
	})

	require.NoError(t, err)
	assert.Equal(t, "kari@example.no", user.Email)
	assert.NotEmpty(t, tokenStr)

	stored := repo.users["kari@example.no"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hemmelig123")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser("kari@example.no", "hemmelig123", true)
	svc := newAuthService(repo)

	_, _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "kari@example.no",
		Password: "hemmelig123",
		Name:     "Kari Nordmann",
	})

	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	want := repo.addUser("kari@example.no", "hemmelig123", true)
	svc := newAuthService(repo)

	user, tokenStr, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "KARI@example.no",
		Password: "hemmelig123",
	})

	require.NoError(t, err)
	assert.Equal(t, want.ID, user.ID)
	assert.NotEmpty(t, tokenStr)
	assert.Equal(t, want.ID, repo.lastLoginID)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser("kari@example.no", "hemmelig123", true)
	svc := newAuthService(repo)

	_, _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "kari@example.no",
		Password: "feil-passord",
	})

	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ukjent@example.no",
		Password: "hemmelig123",
	})

	// Unknown accounts and wrong passwords are indistinguishable to callers.
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthService_LoginInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser("kari@example.no", "hemmelig123", false)
	svc := newAuthService(repo)

	_, _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "kari@example.no",
		Password: "hemmelig123",
	})

	assert.ErrorIs(t, err, entity.ErrInactiveAccount)
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	user, tokenStr, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "kari@example.no",
		Password: "hemmelig123",
		Name:     "Kari Nordmann",
	})
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), tokenStr)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_AuthenticateErrors(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, entity.ErrNoToken)

	_, err = svc.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, entity.ErrInvalidToken)

	// A valid token minted for a user that no longer exists is invalid.
	tokenStr, err := token.NewManager("test-secret", time.Hour).Generate("ghost", "ghost@example.no", "user")
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), tokenStr)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}
