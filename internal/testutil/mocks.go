package testutil

import (
	"context"

	"crabigator/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCredentialRepository is a mock for repository.CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Register(userID int64, apiToken string) error {
	args := m.Called(userID, apiToken)
	return args.Error(0)
}

func (m *MockCredentialRepository) Find(userID int64) (*domain.Credential, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Remove(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// MockPrefixRepository is a mock for repository.PrefixRepository
type MockPrefixRepository struct {
	mock.Mock
}

func (m *MockPrefixRepository) Set(guildID int64, prefix string) error {
	args := m.Called(guildID, prefix)
	return args.Error(0)
}

func (m *MockPrefixRepository) Get(guildID int64) (string, error) {
	args := m.Called(guildID)
	return args.String(0), args.Error(1)
}

// MockStatsProvider is a mock for handler.StatsProvider
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) FetchUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockStatsProvider) GetOrFetchProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockStatsProvider) FetchSummary(ctx context.Context, userID int64) (*domain.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockStatsProvider) FetchItemCounts(ctx context.Context, userID int64) (domain.ItemCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ItemCounts), args.Error(1)
}

func (m *MockStatsProvider) FetchReviewCount(ctx context.Context, userID int64, sinceDate string) (int, error) {
	args := m.Called(ctx, userID, sinceDate)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsProvider) FetchLevelProgressions(ctx context.Context, userID int64) ([]domain.LevelProgression, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LevelProgression), args.Error(1)
}
