package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eggslist/internal/database"
	"eggslist/internal/model"
	"eggslist/internal/repository"
)

// ContentPostgres is a PostgreSQL implementation of repository.ContentRepository.
type ContentPostgres struct {
	db *sql.DB
}

// NewContentPostgres creates a new ContentPostgres repository.
func NewContentPostgres(db *sql.DB) *ContentPostgres {
	return &ContentPostgres{db: db}
}

var _ repository.ContentRepository = (*ContentPostgres)(nil)

// nextPosition yields the given position, or one past the current maximum when it is zero.
const nextPosition = `CASE WHEN $%d > 0 THEN $%d ELSE (SELECT COALESCE(MAX(position), 0) + 1 FROM %s) END`

func positionExpr(argN int, table repository.ContentKind) string {
	return fmt.Sprintf(nextPosition, argN, argN, table)
}

func (r *ContentPostgres) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	const q = `SELECT id, author_name, body, position FROM testimonials ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Testimonial, 0)
	for rows.Next() {
		var t model.Testimonial
		if err := rows.Scan(&t.ID, &t.AuthorName, &t.Body, &t.Position); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *ContentPostgres) CreateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	q := `
		INSERT INTO testimonials (author_name, body, position)
		VALUES ($1, $2, ` + positionExpr(3, repository.KindTestimonial) + `)
		RETURNING id, author_name, body, position
	`
	var out model.Testimonial
	if err := r.db.QueryRowContext(ctx, q, t.AuthorName, t.Body, t.Position).
		Scan(&out.ID, &out.AuthorName, &out.Body, &out.Position); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) UpdateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		UPDATE testimonials SET author_name = $2, body = $3, position = $4
		WHERE id = $1
		RETURNING id, author_name, body, position
	`
	var out model.Testimonial
	if err := r.db.QueryRowContext(ctx, q, t.ID, t.AuthorName, t.Body, t.Position).
		Scan(&out.ID, &out.AuthorName, &out.Body, &out.Position); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	const q = `SELECT id, question, answer, position FROM faqs ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FAQ, 0)
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Position); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *ContentPostgres) CreateFAQ(ctx context.Context, f *model.FAQ) (*model.FAQ, error) {
	q := `
		INSERT INTO faqs (question, answer, position)
		VALUES ($1, $2, ` + positionExpr(3, repository.KindFAQ) + `)
		RETURNING id, question, answer, position
	`
	var out model.FAQ
	if err := r.db.QueryRowContext(ctx, q, f.Question, f.Answer, f.Position).
		Scan(&out.ID, &out.Question, &out.Answer, &out.Position); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) UpdateFAQ(ctx context.Context, f *model.FAQ) (*model.FAQ, error) {
	const q = `
		UPDATE faqs SET question = $2, answer = $3, position = $4
		WHERE id = $1
		RETURNING id, question, answer, position
	`
	var out model.FAQ
	if err := r.db.QueryRowContext(ctx, q, f.ID, f.Question, f.Answer, f.Position).
		Scan(&out.ID, &out.Question, &out.Answer, &out.Position); err != nil {
		return nil, err
	}
	return &out, nil
}

const teamMemberColumns = `id, first_name, last_name, image, job_title, position`

func scanTeamMember(s interface{ Scan(...any) error }) (*model.TeamMember, error) {
	var m model.TeamMember
	if err := s.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Image, &m.JobTitle, &m.Position); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContentPostgres) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	const q = `SELECT ` + teamMemberColumns + ` FROM team_members ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *ContentPostgres) FindTeamMember(ctx context.Context, id int64) (*model.TeamMember, error) {
	const q = `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = $1`
	return scanTeamMember(r.db.QueryRowContext(ctx, q, id))
}

func (r *ContentPostgres) CreateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	q := `
		INSERT INTO team_members (first_name, last_name, image, job_title, position)
		VALUES ($1, $2, $3, $4, ` + positionExpr(5, repository.KindTeamMember) + `)
		RETURNING ` + teamMemberColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q, m.FirstName, m.LastName, m.Image, m.JobTitle, m.Position))
}

func (r *ContentPostgres) UpdateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	const q = `
		UPDATE team_members SET first_name = $2, last_name = $3, image = $4, job_title = $5, position = $6
		WHERE id = $1
		RETURNING ` + teamMemberColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q, m.ID, m.FirstName, m.LastName, m.Image, m.JobTitle, m.Position))
}

// Delete removes a row by id. It returns sql.ErrNoRows when nothing matched.
func (r *ContentPostgres) Delete(ctx context.Context, kind repository.ContentKind, id int64) error {
	if !validKind(kind) {
		return fmt.Errorf("unknown content kind %q", kind)
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", kind), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Reorder rewrites positions inside one transaction so readers never see a
// half-applied ordering.
func (r *ContentPostgres) Reorder(ctx context.Context, kind repository.ContentKind, ids []int64) error {
	if !validKind(kind) {
		return fmt.Errorf("unknown content kind %q", kind)
	}
	q := fmt.Sprintf("UPDATE %s SET position = $1 WHERE id = $2", kind)
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for i, id := range ids {
			res, err := tx.ExecContext(ctx, q, i+1, id)
			if err != nil {
				return err
			}
			if err := requireAffected(res); err != nil {
				return fmt.Errorf("reorder id %d: %w", id, err)
			}
		}
		return nil
	})
}

func validKind(k repository.ContentKind) bool {
	switch k {
	case repository.KindTestimonial, repository.KindFAQ, repository.KindTeamMember:
		return true
	}
	return false
}
