package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eggslist/internal/model"
	"eggslist/internal/repository"
)

func newContentRepo(t *testing.T) (*ContentPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentPostgres(db), mock
}

func TestContentPostgres_ListTestimonials(t *testing.T) {
	repo, mock := newContentRepo(t)

	mock.ExpectQuery(`SELECT id, author_name, body, position FROM testimonials ORDER BY position, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_name", "body", "position"}).
			AddRow(2, "Ann", "Fresh eggs", 1).
			AddRow(1, "Bob", "Great honey", 2))

	items, err := repo.ListTestimonials(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ann", items[0].AuthorName)
	assert.Equal(t, 2, items[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentPostgres_CreateTestimonialAppendsOnZeroPosition(t *testing.T) {
	repo, mock := newContentRepo(t)

	mock.ExpectQuery(`INSERT INTO testimonials \(author_name, body, position\) VALUES \(\$1, \$2, CASE WHEN \$3 > 0 THEN \$3 ELSE \(SELECT COALESCE\(MAX\(position\), 0\) \+ 1 FROM testimonials\) END\)`).
		WithArgs("Ann", "Fresh eggs", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_name", "body", "position"}).AddRow(5, "Ann", "Fresh eggs", 4))

	out, err := repo.CreateTestimonial(context.Background(), &model.Testimonial{AuthorName: "Ann", Body: "Fresh eggs"})

	require.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, 4, out.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentPostgres_UpdateFAQ(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`UPDATE faqs SET question = \$2, answer = \$3, position = \$4 WHERE id = \$1`).
			WithArgs(int64(3), "Q?", "A.", 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer", "position"}).AddRow(3, "Q?", "A.", 2))

		out, err := repo.UpdateFAQ(context.Background(), &model.FAQ{ID: 3, Question: "Q?", Answer: "A.", Position: 2})

		require.NoError(t, err)
		assert.Equal(t, "A.", out.Answer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`UPDATE faqs`).WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateFAQ(context.Background(), &model.FAQ{ID: 99})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestContentPostgres_TeamMembers(t *testing.T) {
	cols := []string{"id", "first_name", "last_name", "image", "job_title", "position"}
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`SELECT id, first_name, last_name, image, job_title, position FROM team_members ORDER BY position, id`).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, "Jane", "Doe", "team/jane.jpg", "Founder", 1).
				AddRow(2, "John", "Roe", "", "Engineer", 2))

		items, err := repo.ListTeamMembers(ctx)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "team/jane.jpg", items[0].Image)
		assert.Empty(t, items[1].Image)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`FROM team_members WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Jane", "Doe", "", "Founder", 1))

		m, err := repo.FindTeamMember(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Jane", m.FirstName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create with explicit position", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`INSERT INTO team_members (.+) FROM team_members\) END\) RETURNING`).
			WithArgs("Jane", "Doe", "", "Founder", 3).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(7, "Jane", "Doe", "", "Founder", 3))

		m, err := repo.CreateTeamMember(ctx, &model.TeamMember{FirstName: "Jane", LastName: "Doe", JobTitle: "Founder", Position: 3})

		require.NoError(t, err)
		assert.Equal(t, 3, m.Position)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update image", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectQuery(`UPDATE team_members SET`).
			WithArgs(int64(7), "Jane", "Doe", "team/7.jpg", "Founder", 3).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(7, "Jane", "Doe", "team/7.jpg", "Founder", 3))

		m, err := repo.UpdateTeamMember(ctx, &model.TeamMember{ID: 7, FirstName: "Jane", LastName: "Doe", Image: "team/7.jpg", JobTitle: "Founder", Position: 3})

		require.NoError(t, err)
		assert.Equal(t, "team/7.jpg", m.Image)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContentPostgres_Delete(t *testing.T) {
	repo, mock := newContentRepo(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM faqs WHERE id = \$1`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM faqs WHERE id = \$1`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, repository.KindFAQ, 1))
	assert.ErrorIs(t, repo.Delete(ctx, repository.KindFAQ, 2), sql.ErrNoRows)
	assert.ErrorContains(t, repo.Delete(ctx, repository.ContentKind("users"), 1), "unknown content kind")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentPostgres_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("commits new positions", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE testimonials SET position = \$1 WHERE id = \$2`).
			WithArgs(1, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE testimonials SET position = \$1 WHERE id = \$2`).
			WithArgs(2, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Reorder(ctx, repository.KindTestimonial, []int64{3, 1}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on unknown id", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE faqs SET position`).
			WithArgs(1, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE faqs SET position`).
			WithArgs(2, int64(42)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Reorder(ctx, repository.KindFAQ, []int64{3, 42})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.ErrorContains(t, err, "reorder id 42")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newContentRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE team_members SET position`).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := repo.Reorder(ctx, repository.KindTeamMember, []int64{1})
		assert.EqualError(t, err, "boom")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
