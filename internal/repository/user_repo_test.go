package repository

import (
	"context"
	"testing"

	"github.com/adistaps/simola-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	role := model.Role{Name: model.RolePetugas}
	require.NoError(t, db.Create(&role).Error)

	user := &model.User{
		Email:        "ahmad@simola110.id",
		PasswordHash: "hashed",
		RoleID:       &role.ID,
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.CreateProfile(ctx, &model.Profile{
		UserID: user.ID,
		Nama:   "Bripka Ahmad",
	}))

	found, err := repo.FindByEmail(ctx, "ahmad@simola110.id")
	require.NoError(t, err)
	assert.Equal(t, model.RolePetugas, found.Role.Name)
	require.NotNil(t, found.Profile)
	assert.Equal(t, "Bripka Ahmad", found.Profile.Nama)

	byID, err := repo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestUserRepositoryDuplicateProfileInsertFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Email: "a@simola110.id", PasswordHash: "x"}
	require.NoError(t, repo.CreateUser(ctx, user))

	profile := &model.Profile{UserID: user.ID, Nama: "A"}
	require.NoError(t, repo.CreateProfile(ctx, profile))

	// insert kedua dengan primary key sama harus gagal, bukan menimpa
	err := repo.CreateProfile(ctx, &model.Profile{UserID: user.ID, Nama: "B"})
	require.Error(t, err)

	found, err := repo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "A", found.Profile.Nama)
}

func TestUserRepositoryFindRoleByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Role{Name: model.RoleAdmin}).Error)

	role, err := repo.FindRoleByName(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role.Name)

	_, err = repo.FindRoleByName(ctx, "supervisor")
	assert.Error(t, err)
}

func TestUserRepositoryUpdateTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Email: "a@simola110.id", PasswordHash: "x"}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NoError(t, repo.CreateProfile(ctx, &model.Profile{UserID: user.ID, Nama: "A"}))

	found, err := repo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)

	found.Email = "baru@simola110.id"
	found.Profile.Nama = "Nama Baru"
	require.NoError(t, repo.Update(ctx, found, found.Profile))

	updated, err := repo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "baru@simola110.id", updated.Email)
	assert.Equal(t, "Nama Baru", updated.Profile.Nama)
}

func TestUserRepositoryCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.CreateUser(ctx, &model.User{Email: "a@simola110.id", PasswordHash: "x"}))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
