package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/auth"
	autherrors "github.com/Anuradha654321/faculty-leave-system/internal/auth/errors"
	"github.com/Anuradha654321/faculty-leave-system/internal/directory"
	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
)

type fakeUserRepository struct {
	byEmail map[string]*directory.User
	byID    map[string]*directory.User
}

func (f *fakeUserRepository) SearchFaculty(ctx context.Context, deptID, excludeUserID, query string, limit int) ([]directory.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*directory.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*directory.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindHODByDept(ctx context.Context, deptID string) (*directory.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) FindAdmin(ctx context.Context) (*directory.User, error) {
	return nil, nil
}

const testSecret = "test-secret"

func seededUser(t *testing.T, password string) *directory.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &directory.User{
		ID:        uuid.New(),
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@institution.edu",
		Password:  string(hash),
		Role:      domain.RoleFaculty,
		DeptID:    uuid.New(),
		Status:    directory.StatusActive,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a token with identity claims", func(t *testing.T) {
		user := seededUser(t, "secret123")
		repo := &fakeUserRepository{byEmail: map[string]*directory.User{user.Email: user}}
		svc := auth.NewService(repo, testSecret, time.Hour)

		token, resp, err := svc.Login(ctx, user.Email, "secret123")

		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, "Asha Verma", resp.Name)
		assert.Equal(t, domain.RoleFaculty, resp.Role)

		parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		assert.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, user.DeptID.String(), claims["dept_id"])
		assert.Equal(t, domain.RoleFaculty, claims["role"])
		assert.Equal(t, "Asha Verma", claims["name"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		user := seededUser(t, "secret123")
		repo := &fakeUserRepository{byEmail: map[string]*directory.User{user.Email: user}}
		svc := auth.NewService(repo, testSecret, time.Hour)

		_, _, err := svc.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret, time.Hour)

		_, _, err := svc.Login(ctx, "nobody@institution.edu", "secret123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive account", func(t *testing.T) {
		user := seededUser(t, "secret123")
		user.Status = directory.StatusInactive
		repo := &fakeUserRepository{byEmail: map[string]*directory.User{user.Email: user}}
		svc := auth.NewService(repo, testSecret, time.Hour)

		_, _, err := svc.Login(ctx, user.Email, "secret123")

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := seededUser(t, "secret123")
		repo := &fakeUserRepository{byID: map[string]*directory.User{user.ID.String(): user}}
		svc := auth.NewService(repo, testSecret, time.Hour)

		resp, err := svc.GetMe(ctx, user.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret, time.Hour)

		_, err := svc.GetMe(ctx, uuid.New().String())

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
