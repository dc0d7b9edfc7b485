package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eggslist/internal/auth"
	"eggslist/internal/model"
	repoMocks "eggslist/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)
	hash, err := auth.HashPassword("pa55word")
	require.NoError(t, err)

	tests := []struct {
		name       string
		in         LoginInput
		setupMocks func(r *repoMocks.MockUserRepository)
		wantErr    error
		wantField  string
	}{
		{
			name: "valid credentials",
			in:   LoginInput{Email: "admin@example.com", Password: "pa55word"},
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{ID: 7, PasswordHash: hash, IsStaff: true}, nil)
				r.On("FindByID", ctx, int64(7)).Return(&model.User{ID: 7, IsStaff: true}, nil)
			},
		},
		{
			name: "wrong password",
			in:   LoginInput{Email: "admin@example.com", Password: "nope"},
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{ID: 7, PasswordHash: hash}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "unknown user",
			in:   LoginInput{Email: "ghost@example.com", Password: "x"},
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:       "malformed email",
			in:         LoginInput{Email: "not-an-email", Password: "x"},
			setupMocks: func(r *repoMocks.MockUserRepository) {},
			wantField:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mRepo)
			svc := NewAuthService(mRepo, tokens, zap.NewNop())

			token, err := svc.Login(ctx, tt.in)

			switch {
			case tt.wantField != "":
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.wantField)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				p, err := svc.Verify(ctx, token)
				require.NoError(t, err)
				assert.Equal(t, &Principal{UserID: 7, IsStaff: true}, p)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)
	staffToken, err := tokens.Generate(7, true)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *repoMocks.MockUserRepository)
		want       *Principal
		wantErr    error
		errMsg     string
	}{
		{
			name:       "malformed token",
			token:      "garbage",
			setupMocks: func(r *repoMocks.MockUserRepository) {},
			wantErr:    auth.ErrInvalidToken,
		},
		{
			name:  "staff user",
			token: staffToken,
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByID", ctx, int64(7)).Return(&model.User{ID: 7, IsStaff: true}, nil)
			},
			want: &Principal{UserID: 7, IsStaff: true},
		},
		{
			name:  "staff flag revoked after issue",
			token: staffToken,
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByID", ctx, int64(7)).Return(&model.User{ID: 7}, nil)
			},
			want: &Principal{UserID: 7},
		},
		{
			name:  "user deleted after issue",
			token: staffToken,
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByID", ctx, int64(7)).Return(nil, sql.ErrNoRows)
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:  "lookup failure",
			token: staffToken,
			setupMocks: func(r *repoMocks.MockUserRepository) {
				r.On("FindByID", ctx, int64(7)).Return(nil, errors.New("db down"))
			},
			errMsg: "load token user: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mRepo)
			svc := NewAuthService(mRepo, tokens, zap.NewNop())

			p, err := svc.Verify(ctx, tt.token)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
			case tt.errMsg != "":
				assert.EqualError(t, err, tt.errMsg)
				assert.NotErrorIs(t, err, auth.ErrInvalidToken)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, p)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_EnsureSuperuser(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)

	t.Run("skips when unset", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		require.NoError(t, NewAuthService(mRepo, tokens, zap.NewNop()).EnsureSuperuser(ctx, "", "pw"))
		mRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("skips when present", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("ExistsByEmail", ctx, "admin@example.com").Return(true, nil)
		require.NoError(t, NewAuthService(mRepo, tokens, zap.NewNop()).EnsureSuperuser(ctx, "admin@example.com", "pw"))
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates a staff user with a hashed password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("ExistsByEmail", ctx, "admin@example.com").Return(false, nil)
		mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "admin@example.com" && u.IsStaff && auth.CheckPasswordHash("pw", u.PasswordHash)
		})).Return(&model.User{ID: 1, Email: "admin@example.com", IsStaff: true}, nil)

		require.NoError(t, NewAuthService(mRepo, tokens, zap.NewNop()).EnsureSuperuser(ctx, " admin@example.com ", "pw"))
		mRepo.AssertExpectations(t)
	})

	t.Run("lookup failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("ExistsByEmail", ctx, "admin@example.com").Return(false, errors.New("db down"))
		err := NewAuthService(mRepo, tokens, zap.NewNop()).EnsureSuperuser(ctx, "admin@example.com", "pw")
		assert.EqualError(t, err, "check superuser: db down")
	})
}
