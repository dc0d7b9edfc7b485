package mocks

import (
	"context"

	"eggslist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMailingService struct {
	mock.Mock
}

func (m *MockMailingService) Send(ctx context.Context, in service.MailingInput) (int, error) {
	args := m.Called(ctx, in)
	return args.Int(0), args.Error(1)
}
