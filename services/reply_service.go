package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ReplyGenerator produces an automated reply for an assembled prompt.
// It is a single blocking call; the caller's only recovery on failure is
// to skip sending a reply for that event.
type ReplyGenerator interface {
	Generate(prompt string) (string, error)
}

type openAIReplyGenerator struct {
	client *openai.Client
	model  string
}

// NewReplyGenerator creates a ReplyGenerator backed by an OpenAI-compatible
// chat-completion endpoint (OpenRouter in the default configuration).
func NewReplyGenerator(apiKey, baseURL, model string) ReplyGenerator {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &openAIReplyGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Generate sends the prompt as a single user message and returns the
// trimmed completion text.
func (g *openAIReplyGenerator) Generate(prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("ERROR: [ReplyGenerator] Chat completion failed for model %s: %v", g.model, err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat completion returned empty text")
	}
	return text, nil
}
