package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eggslist/internal/model"
)

var userCols = []string{"id", "email", "first_name", "last_name", "password_hash", "is_staff", "created_at"}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("Admin@Example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin@example.com", "", "", "hash", true, now))
	mock.ExpectQuery(`FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.FindByEmail(context.Background(), "Admin@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.True(t, u.IsStaff)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "a@b.c", "A", "B", "h", false, time.Now()))

	u, err := NewUserPostgres(db).FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, u.IsStaff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ExistsAndCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE lower\(email\) = lower\(\$1\)\)`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users \(email, first_name, last_name, password_hash, is_staff\)`).
		WithArgs("admin@example.com", "", "", "hash", true).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin@example.com", "", "", "hash", true, time.Now()))

	exists, err := repo.ExistsByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	u, err := repo.Create(ctx, &model.User{Email: "admin@example.com", PasswordHash: "hash", IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserPostgres(db)

	mock.ExpectQuery(`FROM users WHERE id IN \(\$1, \$2\) ORDER BY id`).
		WithArgs(int64(2), int64(9)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "a@b.c", "A", "B", "h", false, time.Now()))

	users, err := repo.ListByIDs(context.Background(), []int64{2, 9})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.c", users[0].Email)

	users, err = repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
