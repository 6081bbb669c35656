package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
	"github.com/osse101/JackpotEngine_Go/internal/round"
)

// MockRoundService is a mock implementation of round.Service
type MockRoundService struct {
	mock.Mock
}

func (m *MockRoundService) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRoundService) Current(ctx context.Context) domain.Round {
	return m.Called(ctx).Get(0).(domain.Round)
}

func (m *MockRoundService) Halted() bool {
	return m.Called().Bool(0)
}

func (m *MockRoundService) Contribute(ctx context.Context, who domain.Identity, req round.ContributeRequest) (domain.Round, error) {
	args := m.Called(ctx, who, req)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockRoundService) ForceLock(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRoundService) Resume(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRoundService) History(ctx context.Context, limit, offset int) (domain.HistoryPage, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).(domain.HistoryPage), args.Error(1)
}

func (m *MockRoundService) HistoryEntry(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	args := m.Called(ctx, roundHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchiveEntry), args.Error(1)
}

func (m *MockRoundService) VerifyRound(ctx context.Context, roundHash string) (fairness.Outcome, error) {
	args := m.Called(ctx, roundHash)
	return args.Get(0).(fairness.Outcome), args.Error(1)
}

func (m *MockRoundService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockResolver is a mock implementation of identity.Resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(domain.Identity), args.Error(1)
}
