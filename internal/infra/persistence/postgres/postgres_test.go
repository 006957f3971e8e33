package postgres

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"authcore/internal/domain/entity"
	"authcore/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}), logger, false)
	require.NoError(t, err)

	return db, mock
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	now := time.Unix(1_700_000_000, 0)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens" WHERE expires_at <= $1`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteByIdentityID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens" WHERE identity_id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.DeleteByIdentityID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens" WHERE id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByID(context.Background(), uuid.New())

	assert.True(t, errors.Is(err, repository.ErrRefreshTokenNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_FindByHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	id := uuid.New()
	expiresAt := time.Unix(1_700_000_000, 0).UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "refresh_tokens" WHERE token_hash = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "identity_id", "token_hash", "expires_at", "created_at"}).
			AddRow(id.String(), int64(42), "abc", expiresAt, expiresAt))

	token, err := repo.FindByHash(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, id, token.ID)
	assert.Equal(t, int64(42), token.IdentityID)
	assert.True(t, expiresAt.Equal(token.ExpiresAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_FindByHash_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "refresh_tokens" WHERE token_hash = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByHash(context.Background(), "missing")

	assert.True(t, errors.Is(err, repository.ErrRefreshTokenNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")

	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepository_UpdateLastLogin_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_login_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLastLogin(context.Background(), 7, time.Now())

	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepository_LockForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository(db)

	mock.ExpectQuery(`SELECT "id" FROM "users" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.LockForUpdate(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE name = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(int64(1), "ROLE_USER", "regular user"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE name = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	role, err := repo.FindByName(context.Background(), "ROLE_USER")
	require.NoError(t, err)
	assert.Equal(t, int64(1), role.ID)
	assert.Equal(t, "ROLE_USER", role.Name.String())

	_, err = repo.FindByName(context.Background(), "ROLE_MISSING")
	assert.True(t, errors.Is(err, repository.ErrRoleNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens" WHERE identity_id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		_, err := f.RefreshTokenRepo().DeleteByIdentityID(context.Background(), 42)

		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRoles_InsertsReferenceRoles(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "roles" .* ON CONFLICT \("name"\) DO NOTHING RETURNING "id"`).
		WithArgs("ROLE_USER", sqlmock.AnyArg(), "ROLE_ADMIN", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	require.NoError(t, seedRoles(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Create_Conflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "refresh_tokens"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_refresh_tokens_identity_id" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &entity.RefreshToken{
		IdentityID: 42,
		TokenHash:  "hash",
		ExpiresAt:  time.Unix(1_700_000_000, 0),
	})

	assert.True(t, errors.Is(err, repository.ErrRefreshTokenConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
