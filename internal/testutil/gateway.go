package testutil

import (
	"crabigator/internal/chat"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock for chat.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockGateway) SendEmbed(chatID int64, embed chat.Embed) error {
	args := m.Called(chatID, embed)
	return args.Error(0)
}

func (m *MockGateway) SendFile(chatID int64, path, caption string) error {
	args := m.Called(chatID, path, caption)
	return args.Error(0)
}

func (m *MockGateway) Delete(chatID int64, messageID string) error {
	args := m.Called(chatID, messageID)
	return args.Error(0)
}

func (m *MockGateway) IsAdmin(chatID int64, userID int64) (bool, error) {
	args := m.Called(chatID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) CustomEmoji(chatID int64, hints []string) (string, bool) {
	args := m.Called(chatID, hints)
	return args.String(0), args.Bool(1)
}

func (m *MockGateway) SetPresence(status string) error {
	args := m.Called(status)
	return args.Error(0)
}

func (m *MockGateway) BotName() string {
	args := m.Called()
	return args.String(0)
}
