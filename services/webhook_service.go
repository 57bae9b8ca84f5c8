package services

import (
	"log"
	"sync"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/rxnlog/experiment-line-bot/models"
	"github.com/rxnlog/experiment-line-bot/repository"
)

// WebhookService drives the ingestion flow for a batch of webhook events:
// profile upsert, inbound persistence, and the optional generate-and-reply
// leg when the user's bot flag is on.
type WebhookService interface {
	ProcessEvents(events []*linebot.Event)
}

type webhookService struct {
	profileService ProfileService
	userRepo       repository.UserRepository
	messageRepo    repository.MessageRepository
	settingsRepo   repository.SettingsRepository
	lineClient     LineClient
	replyGen       ReplyGenerator
	historyWindow  int
}

// NewWebhookService creates a new instance of WebhookService.
// historyWindow is the number of recent messages included as prompt context.
func NewWebhookService(
	profileService ProfileService,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	settingsRepo repository.SettingsRepository,
	lineClient LineClient,
	replyGen ReplyGenerator,
	historyWindow int,
) WebhookService {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &webhookService{
		profileService: profileService,
		userRepo:       userRepo,
		messageRepo:    messageRepo,
		settingsRepo:   settingsRepo,
		lineClient:     lineClient,
		replyGen:       replyGen,
		historyWindow:  historyWindow,
	}
}

// ProcessEvents handles every event concurrently and waits for all of them.
// Each event gets exactly one attempt; failures are logged and never abort
// the other events or the webhook response. Redelivered events are
// reprocessed in full, there is no deduplication.
func (s *webhookService) ProcessEvents(events []*linebot.Event) {
	var wg sync.WaitGroup
	for _, event := range events {
		wg.Add(1)
		go func(event *linebot.Event) {
			defer wg.Done()
			if err := s.handleEvent(event); err != nil {
				log.Printf("ERROR: [WebhookService] Event processing failed: %v", err)
			}
		}(event)
	}
	wg.Wait()
}

// handleEvent processes one inbound event. Only text message events from an
// identifiable user are handled; everything else is silently ignored.
func (s *webhookService) handleEvent(event *linebot.Event) error {
	if event.Type != linebot.EventTypeMessage {
		return nil
	}
	textMessage, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		return nil
	}
	if event.Source == nil || event.Source.UserID == "" {
		return nil
	}

	userID := event.Source.UserID
	userText := textMessage.Text

	// Profile resolution is best-effort: a failed fallback upsert is logged
	// but must not block message persistence.
	if err := s.profileService.EnsureUser(userID); err != nil {
		log.Printf("ERROR: [WebhookService] Failed to ensure user row for %s: %v", userID, err)
	}

	inbound := &models.Message{
		UserID:     userID,
		Content:    userText,
		Direction:  models.DirectionInbound,
		SenderType: models.SenderUser,
	}
	if err := s.messageRepo.SaveMessage(inbound); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.IsBotActive {
		log.Printf("INFO: [WebhookService] Bot is not active for user %s. No reply generated.", userID)
		return nil
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return err
	}

	// Newest-first window including the message just stored; reversed to
	// chronological order for the transcript.
	recent, err := s.messageRepo.GetRecent(userID, s.historyWindow)
	if err != nil {
		return err
	}
	history := make([]models.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, recent[i])
	}

	prompt := BuildPrompt(settings.SystemPromptTemplate, history, userText)

	replyText, err := s.replyGen.Generate(prompt)
	if err != nil {
		// The inbound message stays stored; no reply is sent for this event.
		return err
	}
	log.Printf("INFO: [WebhookService] Generated reply for user %s: %.50s...", userID, replyText)

	if err := s.lineClient.ReplyText(event.ReplyToken, replyText); err != nil {
		return err
	}

	outbound := &models.Message{
		UserID:     userID,
		Content:    replyText,
		Direction:  models.DirectionOutbound,
		SenderType: models.SenderBot,
	}
	return s.messageRepo.SaveMessage(outbound)
}
