package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rxnlog/experiment-line-bot/models"
	"github.com/rxnlog/experiment-line-bot/repository"
	"github.com/rxnlog/experiment-line-bot/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testChannelSecret = "test-channel-secret"
	testAPISecret     = "test-api-secret"
)

// stubLineClient records outgoing LINE calls instead of performing them.
type stubLineClient struct {
	mu         sync.Mutex
	profile    *services.LineProfile
	profileErr error
	replyErr   error
	pushErr    error
	replies    []string
	pushes     []string
}

func (s *stubLineClient) GetProfile(userID string) (*services.LineProfile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	if s.profile != nil {
		return s.profile, nil
	}
	return &services.LineProfile{DisplayName: "Stub User"}, nil
}

func (s *stubLineClient) ReplyText(replyToken, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replyErr != nil {
		return s.replyErr
	}
	s.replies = append(s.replies, text)
	return nil
}

func (s *stubLineClient) PushText(to, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pushErr != nil {
		return s.pushErr
	}
	s.pushes = append(s.pushes, text)
	return nil
}

// stubReplyGenerator returns a fixed completion or a fixed error.
type stubReplyGenerator struct {
	text string
	err  error
}

func (s *stubReplyGenerator) Generate(prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// testServer bundles a router wired over a fresh in-memory database.
type testServer struct {
	router      *gin.Engine
	db          *gorm.DB
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	lineClient  *stubLineClient
	replyGen    *stubReplyGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Named shared-cache memory database: every pooled connection sees the
	// same schema, while each test keeps its own database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.BotSettings{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	lineClient := &stubLineClient{}
	replyGen := &stubReplyGenerator{text: "generated reply"}

	profileService := services.NewProfileService(lineClient, userRepo)
	webhookService := services.NewWebhookService(
		profileService, userRepo, messageRepo, settingsRepo,
		lineClient, replyGen, 10,
	)

	handler := NewAPIHandler(userRepo, messageRepo, settingsRepo, lineClient, webhookService)

	return &testServer{
		router:      SetupRouter(handler, testAPISecret),
		db:          db,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		lineClient:  lineClient,
		replyGen:    replyGen,
	}
}

// doJSON performs an authorized JSON request against the test router.
func (s *testServer) doJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAPISecret)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signBody computes the x-line-signature value for a raw webhook body.
func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// doWebhook delivers a webhook body signed with the given secret.
func (s *testServer) doWebhook(body []byte, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", signBody(secret, body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) countMessages(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := s.db.Model(&models.Message{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count messages: %v", err)
	}
	return count
}
