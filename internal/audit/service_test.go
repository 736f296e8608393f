package audit

import (
	"context"
	"testing"
	"time"

	"github.com/Ivnfdzz/PickNPlay-sub000/internal/catalog"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/users"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
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
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  unit_price TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  subcategory_id TEXT NOT NULL,
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	auditLog := `
CREATE TABLE IF NOT EXISTS audit_log_entries (
  id TEXT PRIMARY KEY,
  actor_id TEXT NOT NULL,
  action TEXT NOT NULL,
  target_kind TEXT NOT NULL,
  target_id TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(roles).Error)
	require.NoError(t, db.Exec(usersTable).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(auditLog).Error)
	return db
}

func newAuditService(t *testing.T, db *gorm.DB, cfg config.AuditConfig) Service {
	t.Helper()

	svc, err := NewService(
		NewRepository(db),
		users.NewRepository(db),
		catalog.NewProductRepository(db),
		cfg,
		nil,
	)
	require.NoError(t, err)
	return svc
}

func newActor(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	role := &models.Role{ID: uuid.New(), Name: "restocker-" + username}
	require.NoError(t, db.Create(role).Error)
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@picknplay.test",
		PasswordHash: "x",
		RoleID:       role.ID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newAuditProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:            uuid.New(),
		Name:          name,
		UnitPrice:     decimal.RequireFromString("1000.00"),
		IsActive:      true,
		SubcategoryID: uuid.New(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRecord_appendsEntry(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "carla")
	product := newAuditProduct(t, db, "Catan")

	entry, err := svc.Record(context.Background(), RecordInput{
		ActorID:    actor.ID,
		Action:     enums.AuditActionCreate,
		TargetKind: enums.EntityProduct,
		TargetID:   &product.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	views, err := svc.Query(context.Background(), QueryFilters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "carla", views[0].ActorLabel)
	assert.Equal(t, "Catan", views[0].TargetLabel)
	assert.Equal(t, enums.AuditActionCreate, views[0].Action)
}

func TestRecord_rejectsUnknownActor(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	target := uuid.New()
	_, err := svc.Record(context.Background(), RecordInput{
		ActorID:    uuid.New(),
		Action:     enums.AuditActionCreate,
		TargetKind: enums.EntityProduct,
		TargetID:   &target,
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRecord_rejectsInvalidAction(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "dana")

	target := uuid.New()
	_, err := svc.Record(context.Background(), RecordInput{
		ActorID:    actor.ID,
		Action:     enums.AuditAction("delete"),
		TargetKind: enums.EntityProduct,
		TargetID:   &target,
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRecord_requiresTarget(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "fran")

	_, err := svc.Record(context.Background(), RecordInput{
		ActorID:    actor.ID,
		Action:     enums.AuditActionCreate,
		TargetKind: enums.EntityProduct,
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestQuery_fallbackLabelAfterProductDelete(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "eli")
	product := newAuditProduct(t, db, "Short Lived")

	_, err := svc.Record(context.Background(), RecordInput{
		ActorID:    actor.ID,
		Action:     enums.AuditActionUpdate,
		TargetKind: enums.EntityProduct,
		TargetID:   &product.ID,
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("id = ?", product.ID).Delete(&models.Product{}).Error)

	views, err := svc.Query(context.Background(), QueryFilters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "deleted product #"+product.ID.String(), views[0].TargetLabel)
	require.NotNil(t, views[0].TargetID)
	assert.Equal(t, product.ID, *views[0].TargetID)
}

func TestQuery_fallbackLabelAfterActorDelete(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "gone")
	product := newAuditProduct(t, db, "Azul")

	_, err := svc.Record(context.Background(), RecordInput{
		ActorID:    actor.ID,
		Action:     enums.AuditActionCreate,
		TargetKind: enums.EntityProduct,
		TargetID:   &product.ID,
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("id = ?", actor.ID).Delete(&models.User{}).Error)

	views, err := svc.Query(context.Background(), QueryFilters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "deleted user #"+actor.ID.String(), views[0].ActorLabel)
	assert.Equal(t, actor.ID, views[0].ActorID)
}

func TestQuery_filters(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	alice := newActor(t, db, "alice")
	bob := newActor(t, db, "bob")
	product := newAuditProduct(t, db, "Dixit")

	base := time.Now().UTC().Add(-time.Hour)
	rows := []models.AuditLogEntry{
		{ID: uuid.New(), ActorID: alice.ID, Action: enums.AuditActionCreate, TargetKind: enums.EntityProduct, TargetID: &product.ID, CreatedAt: base},
		{ID: uuid.New(), ActorID: alice.ID, Action: enums.AuditActionUpdate, TargetKind: enums.EntityProduct, TargetID: &product.ID, CreatedAt: base.Add(time.Minute)},
		{ID: uuid.New(), ActorID: bob.ID, Action: enums.AuditActionCreate, TargetKind: enums.EntityCategory, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	update := enums.AuditActionUpdate
	views, err := svc.Query(context.Background(), QueryFilters{ActorID: &alice.ID, Action: &update})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, enums.AuditActionUpdate, views[0].Action)

	kind := enums.EntityCategory
	views, err = svc.Query(context.Background(), QueryFilters{TargetKind: &kind})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "bob", views[0].ActorLabel)

	since := base.Add(90 * time.Second)
	views, err = svc.Query(context.Background(), QueryFilters{Since: &since})
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestQuery_newestFirst(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{})

	actor := newActor(t, db, "hana")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		entry := models.AuditLogEntry{
			ID:         uuid.New(),
			ActorID:    actor.ID,
			Action:     enums.AuditActionCreate,
			TargetKind: enums.EntityCategory,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	views, err := svc.Query(context.Background(), QueryFilters{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].CreatedAt.After(views[1].CreatedAt))
	assert.True(t, views[1].CreatedAt.After(views[2].CreatedAt))
}

func TestSummarize(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db, config.AuditConfig{Window: 200, RecentCount: 2})

	alice := newActor(t, db, "alice")
	bob := newActor(t, db, "bob")
	product := newAuditProduct(t, db, "Wingspan")

	base := time.Now().UTC().Add(-time.Hour)
	rows := []models.AuditLogEntry{
		{ID: uuid.New(), ActorID: alice.ID, Action: enums.AuditActionCreate, TargetKind: enums.EntityProduct, TargetID: &product.ID, CreatedAt: base},
		{ID: uuid.New(), ActorID: alice.ID, Action: enums.AuditActionUpdate, TargetKind: enums.EntityProduct, TargetID: &product.ID, CreatedAt: base.Add(time.Minute)},
		{ID: uuid.New(), ActorID: alice.ID, Action: enums.AuditActionUpdate, TargetKind: enums.EntityProduct, TargetID: &product.ID, CreatedAt: base.Add(2 * time.Minute)},
		{ID: uuid.New(), ActorID: bob.ID, Action: enums.AuditActionCreate, TargetKind: enums.EntityCategory, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	summary, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalEntries)
	assert.Equal(t, 2, summary.ByAction["create"])
	assert.Equal(t, 2, summary.ByAction["update"])
	assert.Equal(t, 3, summary.ByTargetKind["product"])
	assert.Equal(t, 1, summary.ByTargetKind["category"])

	require.Len(t, summary.ByActor, 2)
	assert.Equal(t, "alice", summary.ByActor[0].Label)
	assert.Equal(t, 3, summary.ByActor[0].Count)
	assert.Equal(t, "bob", summary.ByActor[1].Label)

	require.Len(t, summary.Recent, 2)
	assert.Equal(t, "bob", summary.Recent[0].ActorLabel)
}
