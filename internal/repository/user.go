package repository

import (
	"context"

	"eggslist/internal/model"
)

// UserRepository stores accounts. Emails are compared case-insensitively.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// ListByIDs returns the users with the given ids ordered by id. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
}
