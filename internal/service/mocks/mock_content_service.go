package mocks

import (
	"context"
	"io"

	"eggslist/internal/model"
	"eggslist/internal/repository"
	"eggslist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) TestimonialViews(ctx context.Context) ([]model.TestimonialView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TestimonialView), args.Error(1)
}

func (m *MockContentService) FAQViews(ctx context.Context) ([]model.FAQView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FAQView), args.Error(1)
}

func (m *MockContentService) TeamMemberViews(ctx context.Context) ([]model.TeamMemberView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamMemberView), args.Error(1)
}

func (m *MockContentService) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Testimonial), args.Error(1)
}

func (m *MockContentService) CreateTestimonial(ctx context.Context, in service.TestimonialInput) (*model.Testimonial, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Testimonial), args.Error(1)
}

func (m *MockContentService) UpdateTestimonial(ctx context.Context, id int64, in service.TestimonialInput) (*model.Testimonial, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Testimonial), args.Error(1)
}

func (m *MockContentService) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FAQ), args.Error(1)
}

func (m *MockContentService) CreateFAQ(ctx context.Context, in service.FAQInput) (*model.FAQ, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockContentService) UpdateFAQ(ctx context.Context, id int64, in service.FAQInput) (*model.FAQ, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQ), args.Error(1)
}

func (m *MockContentService) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamMember), args.Error(1)
}

func (m *MockContentService) CreateTeamMember(ctx context.Context, in service.TeamMemberInput) (*model.TeamMember, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockContentService) UpdateTeamMember(ctx context.Context, id int64, in service.TeamMemberInput) (*model.TeamMember, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockContentService) UploadTeamImage(ctx context.Context, id int64, r io.Reader) (*model.TeamMember, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockContentService) Delete(ctx context.Context, kind repository.ContentKind, id int64) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockContentService) Reorder(ctx context.Context, kind repository.ContentKind, in service.ReorderInput) error {
	args := m.Called(ctx, kind, in)
	return args.Error(0)
}
