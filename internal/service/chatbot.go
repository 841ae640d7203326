package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/backoffice/internal/model"
)

// ChatbotReply is the canned answer of the demo chatbot.
const ChatbotReply = "Ciao! Sono un chatbot di prova. Al momento rispondo sempre con lo stesso messaggio per testing. In futuro potrò essere integrato con una vera AI! 🤖"

const (
	chatAuthorUser = "Tu"
	chatAuthorBot  = "AI Assistant"
)

// ChatbotService echoes every message with a fixed reply after a fake
// typing delay.
type ChatbotService struct {
	delay time.Duration
}

func NewChatbotService(delay time.Duration) *ChatbotService {
	return &ChatbotService{delay: delay}
}

// Reply waits the typing delay and returns the user's message followed by
// the bot answer.  Cancelling ctx abandons the wait.
func (s *ChatbotService) Reply(ctx context.Context, message string) ([]model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		var v ValidationError
		v.add("message", "Il messaggio non può essere vuoto")
		return nil, &v
	}
	sent := time.Now().UTC()

	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}

	return []model.ChatMessage{
		{Author: chatAuthorUser, Text: message, SentAt: sent},
		{Author: chatAuthorBot, Text: ChatbotReply, SentAt: time.Now().UTC()},
	}, nil
}
