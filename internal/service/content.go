package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggslist/internal/model"
	"eggslist/internal/repository"
	"eggslist/internal/storage"
)

const teamImagePrefix = "about"

type TestimonialInput struct {
	AuthorName string `json:"author_name" validate:"required,max=32"`
	Body       string `json:"body" validate:"required"`
	Position   int    `json:"position" validate:"min=0"`
}

type FAQInput struct {
	Question string `json:"question" validate:"required,max=256"`
	Answer   string `json:"answer" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
}

type TeamMemberInput struct {
	FirstName string `json:"first_name" validate:"required,max=128"`
	LastName  string `json:"last_name" validate:"required,max=128"`
	JobTitle  string `json:"job_title" validate:"required,max=128"`
	Position  int    `json:"position" validate:"min=0"`
}

// ReorderInput lists every id of one content kind in its new order.
type ReorderInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,unique"`
}

// ContentService serves testimonials, FAQs and team members. Public views
// omit ids and positions; admin methods work on the stored rows.
type ContentService interface {
	TestimonialViews(ctx context.Context) ([]model.TestimonialView, error)
	FAQViews(ctx context.Context) ([]model.FAQView, error)
	TeamMemberViews(ctx context.Context) ([]model.TeamMemberView, error)

	ListTestimonials(ctx context.Context) ([]model.Testimonial, error)
	CreateTestimonial(ctx context.Context, in TestimonialInput) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (*model.Testimonial, error)

	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	CreateFAQ(ctx context.Context, in FAQInput) (*model.FAQ, error)
	UpdateFAQ(ctx context.Context, id int64, in FAQInput) (*model.FAQ, error)

	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	CreateTeamMember(ctx context.Context, in TeamMemberInput) (*model.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id int64, in TeamMemberInput) (*model.TeamMember, error)
	// UploadTeamImage resizes the image to a 300x300 JPEG and attaches it to the member.
	UploadTeamImage(ctx context.Context, id int64, r io.Reader) (*model.TeamMember, error)

	Delete(ctx context.Context, kind repository.ContentKind, id int64) error
	Reorder(ctx context.Context, kind repository.ContentKind, in ReorderInput) error
}

type contentService struct {
	repo   repository.ContentRepository
	store  storage.Storage
	logger *zap.Logger
}

// NewContentService constructs a ContentService.
func NewContentService(repo repository.ContentRepository, store storage.Storage, logger *zap.Logger) ContentService {
	return &contentService{repo: repo, store: store, logger: logger}
}

func (s *contentService) TestimonialViews(ctx context.Context) ([]model.TestimonialView, error) {
	items, err := s.repo.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.TestimonialView, 0, len(items))
	for _, t := range items {
		out = append(out, model.TestimonialView{AuthorName: t.AuthorName, Body: t.Body})
	}
	return out, nil
}

func (s *contentService) FAQViews(ctx context.Context) ([]model.FAQView, error) {
	items, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FAQView, 0, len(items))
	for _, f := range items {
		out = append(out, model.FAQView{Question: f.Question, Answer: f.Answer})
	}
	return out, nil
}

func (s *contentService) TeamMemberViews(ctx context.Context) ([]model.TeamMemberView, error) {
	items, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.TeamMemberView, 0, len(items))
	for _, m := range items {
		img, err := storage.OptionalURL(ctx, s.store, m.Image)
		if err != nil {
			return nil, fmt.Errorf("team image url: %w", err)
		}
		out = append(out, model.TeamMemberView{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Image:     img,
			JobTitle:  m.JobTitle,
		})
	}
	return out, nil
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}

func (s *contentService) CreateTestimonial(ctx context.Context, in TestimonialInput) (*model.Testimonial, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.CreateTestimonial(ctx, &model.Testimonial{AuthorName: in.AuthorName, Body: in.Body, Position: in.Position})
}

func (s *contentService) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (*model.Testimonial, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	out, err := s.repo.UpdateTestimonial(ctx, &model.Testimonial{ID: id, AuthorName: in.AuthorName, Body: in.Body, Position: in.Position})
	return out, notFound(err)
}

func (s *contentService) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

func (s *contentService) CreateFAQ(ctx context.Context, in FAQInput) (*model.FAQ, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.CreateFAQ(ctx, &model.FAQ{Question: in.Question, Answer: in.Answer, Position: in.Position})
}

func (s *contentService) UpdateFAQ(ctx context.Context, id int64, in FAQInput) (*model.FAQ, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	out, err := s.repo.UpdateFAQ(ctx, &model.FAQ{ID: id, Question: in.Question, Answer: in.Answer, Position: in.Position})
	return out, notFound(err)
}

func (s *contentService) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return s.repo.ListTeamMembers(ctx)
}

func (s *contentService) CreateTeamMember(ctx context.Context, in TeamMemberInput) (*model.TeamMember, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.CreateTeamMember(ctx, &model.TeamMember{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		JobTitle:  in.JobTitle,
		Position:  in.Position,
	})
}

// UpdateTeamMember edits the text fields and keeps the current image.
func (s *contentService) UpdateTeamMember(ctx context.Context, id int64, in TeamMemberInput) (*model.TeamMember, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	m, err := s.repo.FindTeamMember(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	m.FirstName, m.LastName, m.JobTitle, m.Position = in.FirstName, in.LastName, in.JobTitle, in.Position
	out, err := s.repo.UpdateTeamMember(ctx, m)
	return out, notFound(err)
}

func (s *contentService) UploadTeamImage(ctx context.Context, id int64, r io.Reader) (*model.TeamMember, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	m, err := s.repo.FindTeamMember(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	buf, err := storage.ResizeToFill(r, storage.TeamImageProfile)
	if err != nil {
		return nil, err
	}

	key := path.Join(teamImagePrefix, uuid.New().String()+storage.TeamImageProfile.Ext())
	if _, err := s.store.Put(ctx, key, buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: storage.TeamImageProfile.ContentType(),
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	previous := m.Image
	m.Image = key
	out, err := s.repo.UpdateTeamMember(ctx, m)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("rollback upload failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, notFound(err)
	}
	s.deleteObject(ctx, previous)
	return out, nil
}

// Delete removes a row. A team member's image is removed from storage after the row.
func (s *contentService) Delete(ctx context.Context, kind repository.ContentKind, id int64) error {
	var image string
	if kind == repository.KindTeamMember {
		m, err := s.repo.FindTeamMember(ctx, id)
		if err != nil {
			return notFound(err)
		}
		image = m.Image
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return notFound(err)
	}
	s.deleteObject(ctx, image)
	return nil
}

func (s *contentService) Reorder(ctx context.Context, kind repository.ContentKind, in ReorderInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return notFound(s.repo.Reorder(ctx, kind, in.IDs))
}

func (s *contentService) deleteObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("delete media failed", zap.String("key", key), zap.Error(err))
	}
}

// notFound maps a missing row to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
