package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/ats-screener/internal/services"
)

type MockScreener struct {
	mock.Mock
}

func (m *MockScreener) Screen(ctx context.Context, sub services.Submission) (*services.Outcome, error) {
	args := m.Called(ctx, sub)

	outcome, _ := args.Get(0).(*services.Outcome)
	return outcome, args.Error(1)
}
