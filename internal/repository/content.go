package repository

import (
	"context"

	"eggslist/internal/model"
)

// ContentKind names one of the position-ordered content tables.
type ContentKind string

const (
	KindTestimonial ContentKind = "testimonials"
	KindFAQ         ContentKind = "faqs"
	KindTeamMember  ContentKind = "team_members"
)

// ContentRepository stores testimonials, FAQs and team members. Lists are
// ordered by position, then id. A zero position on create appends the row.
type ContentRepository interface {
	ListTestimonials(ctx context.Context) ([]model.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error)

	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	CreateFAQ(ctx context.Context, f *model.FAQ) (*model.FAQ, error)
	UpdateFAQ(ctx context.Context, f *model.FAQ) (*model.FAQ, error)

	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	FindTeamMember(ctx context.Context, id int64) (*model.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)

	Delete(ctx context.Context, kind ContentKind, id int64) error
	// Reorder assigns positions 1..n to ids in the given order.
	Reorder(ctx context.Context, kind ContentKind, ids []int64) error
}
