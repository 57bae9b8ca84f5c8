package services

import (
	"github.com/rxnlog/experiment-line-bot/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the repository.UserRepository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertProfile(userID, displayName, pictureURL string) error {
	args := m.Called(userID, displayName, pictureURL)
	return args.Error(0)
}

func (m *MockUserRepository) TouchUnknown(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetBotActive(userID string, active bool) error {
	args := m.Called(userID, active)
	return args.Error(0)
}

func (m *MockUserRepository) ListConversations() ([]models.ConversationSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversationSummary), args.Error(1)
}

// MockMessageRepository is a mock type for the repository.MessageRepository interface.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) SaveMessage(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetRecent(userID string, limit int) ([]models.Message, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetByUserID(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockSettingsRepository is a mock type for the repository.SettingsRepository interface.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get() (*models.BotSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(settings *models.BotSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

// MockLineClient is a mock type for the LineClient interface.
type MockLineClient struct {
	mock.Mock
}

func (m *MockLineClient) GetProfile(userID string) (*LineProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LineProfile), args.Error(1)
}

func (m *MockLineClient) ReplyText(replyToken, text string) error {
	args := m.Called(replyToken, text)
	return args.Error(0)
}

func (m *MockLineClient) PushText(to, text string) error {
	args := m.Called(to, text)
	return args.Error(0)
}

// MockReplyGenerator is a mock type for the ReplyGenerator interface.
type MockReplyGenerator struct {
	mock.Mock
}

func (m *MockReplyGenerator) Generate(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

// MockProfileService is a mock type for the ProfileService interface.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) EnsureUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}
