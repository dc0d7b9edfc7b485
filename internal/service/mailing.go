package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eggslist/internal/mail"
	"eggslist/internal/model"
	"eggslist/internal/repository"
)

// MailingInput is the admin payload for a templated send. When Addresses is
// empty the mailing goes to the users in UserIDs.
type MailingInput struct {
	Subject   string         `json:"subject" validate:"required,max=256"`
	Template  string         `json:"template" validate:"required"`
	Object    map[string]any `json:"object"`
	UserIDs   []int64        `json:"user_ids"`
	Addresses []string       `json:"addresses" validate:"dive,email"`
}

// Sender sends a rendered mailing. *mail.Mailer implements it.
type Sender interface {
	SendMailing(ctx context.Context, m mail.Mailing) (int, error)
}

// MailingService resolves recipients and hands mailings to a Sender.
type MailingService interface {
	Send(ctx context.Context, in MailingInput) (int, error)
}

type mailingService struct {
	users  repository.UserRepository
	sender Sender
}

// NewMailingService constructs a MailingService.
func NewMailingService(users repository.UserRepository, sender Sender) MailingService {
	return &mailingService{users: users, sender: sender}
}

func (s *mailingService) Send(ctx context.Context, in MailingInput) (int, error) {
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if len(in.UserIDs) == 0 && len(in.Addresses) == 0 {
		return 0, fieldError("addresses", "addresses or user_ids is required")
	}

	var users []model.User
	if len(in.UserIDs) > 0 {
		var err error
		users, err = s.users.ListByIDs(ctx, in.UserIDs)
		if err != nil {
			return 0, fmt.Errorf("load recipients: %w", err)
		}
		if missing := missingUserIDs(in.UserIDs, users); len(missing) > 0 {
			return 0, fieldError("user_ids", "unknown user ids: "+joinIDs(missing))
		}
	}

	var obj any
	if in.Object != nil {
		obj = in.Object
	}
	n, err := s.sender.SendMailing(ctx, mail.Mailing{
		Subject:   in.Subject,
		Template:  in.Template,
		Object:    obj,
		Users:     users,
		Addresses: in.Addresses,
	})
	if errors.Is(err, mail.ErrUnknownTemplate) {
		return 0, fieldError("template", err.Error())
	}
	return n, err
}

// missingUserIDs returns the requested ids with no matching user, in request
// order and without repeats.
func missingUserIDs(ids []int64, users []model.User) []int64 {
	found := make(map[int64]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
			found[id] = true
		}
	}
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
