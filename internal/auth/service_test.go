package auth

import (
	"context"
	"testing"

	"github.com/Ivnfdzz/PickNPlay-sub000/internal/users"
	pkgauth "github.com/Ivnfdzz/PickNPlay-sub000/pkg/auth"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSessions struct {
	opened  []string
	revoked []string
}

func (f *fakeSessions) Open(_ context.Context, accessID string, _ uuid.UUID) error {
	f.opened = append(f.opened, accessID)
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	roles := `
CREATE TABLE IF NOT EXISTS roles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role_id TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(roles).Error)
	require.NoError(t, db.Exec(usersTable).Error)
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "picknplay-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 480,
	}
}

func seedStaffUser(t *testing.T, db *gorm.DB, email, password string, active bool) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)

	role := &models.Role{ID: uuid.New(), Name: "root"}
	require.NoError(t, db.Create(role).Error)

	user := &models.User{
		ID:           uuid.New(),
		Username:     "staff",
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		IsActive:     active,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Model(user).UpdateColumn("is_active", active).Error)
	user.Role = role
	return user
}

func TestLogin_success(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := &fakeSessions{}
	svc, err := NewService(users.NewRepository(db), sessions, testJWTConfig(), nil)
	require.NoError(t, err)

	seeded := seedStaffUser(t, db, "staff@picknplay.test", "s3cret!", true)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Staff@PickNPlay.test",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Len(t, sessions.opened, 1)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Equal(t, "root", claims.Role)
	assert.Equal(t, sessions.opened[0], claims.ID)

	var stored models.User
	require.NoError(t, db.Where("id = ?", seeded.ID).First(&stored).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogin_wrongPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := &fakeSessions{}
	svc, err := NewService(users.NewRepository(db), sessions, testJWTConfig(), nil)
	require.NoError(t, err)

	seedStaffUser(t, db, "staff@picknplay.test", "s3cret!", true)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "staff@picknplay.test",
		Password: "wrong",
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	assert.Empty(t, sessions.opened)
}

func TestLogin_unknownEmail(t *testing.T) {
	db := setupAuthTestDB(t)
	svc, err := NewService(users.NewRepository(db), &fakeSessions{}, testJWTConfig(), nil)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "nobody@picknplay.test",
		Password: "whatever",
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogin_disabledAccount(t *testing.T) {
	db := setupAuthTestDB(t)
	svc, err := NewService(users.NewRepository(db), &fakeSessions{}, testJWTConfig(), nil)
	require.NoError(t, err)

	seedStaffUser(t, db, "staff@picknplay.test", "s3cret!", false)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "staff@picknplay.test",
		Password: "s3cret!",
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogout(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := &fakeSessions{}
	svc, err := NewService(users.NewRepository(db), sessions, testJWTConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "access-id"))
	assert.Equal(t, []string{"access-id"}, sessions.revoked)

	err = svc.Logout(context.Background(), "  ")
	require.Error(t, err)
}
