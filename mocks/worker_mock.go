package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/ats-screener/internal/services"
)

type MockWorker struct {
	mock.Mock
}

func (m *MockWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockWorker) Stop() {
	m.Called()
}

func (m *MockWorker) EnqueueJob(job services.ScreeningJob) error {
	args := m.Called(job)

	return args.Error(0)
}
