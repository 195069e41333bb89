package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/chat"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
)

const (
	replyGap       = time.Second
	minTypingDelay = 2 * time.Second
	maxTypingDelay = 4 * time.Second
)

const sendFailedMessage = "❌ Failed to send message. Please try again."

type ChatService struct {
	backend   ChatBackend
	responder *chat.Responder
	hub       *chat.Hub
	logger    zerolog.Logger
	now       func() time.Time
	typing    func() time.Duration
}

func NewChatService(backend ChatBackend, responder *chat.Responder, hub *chat.Hub, logger zerolog.Logger) *ChatService {
	return &ChatService{
		backend:   backend,
		responder: responder,
		hub:       hub,
		logger:    logger,
		now:       time.Now,
		typing: func() time.Duration {
			return minTypingDelay + rand.N(maxTypingDelay-minTypingDelay)
		},
	}
}

// History loads the conversation; a failed load renders as empty.
func (s *ChatService) History(ctx context.Context, token string) []models.ChatMessage {
	msgs, err := s.backend.ChatMessages(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load chat messages")
		return []models.ChatMessage{}
	}
	if msgs == nil {
		return []models.ChatMessage{}
	}
	return msgs
}

func (s *ChatService) Unread(ctx context.Context, token string) int {
	n, err := s.backend.UnreadCount(ctx, token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Failed to load unread count")
		return 0
	}
	return n
}

// Send echoes the user's message to their open chat pages, forwards it to
// the backend and then plays the autoresponder replies. When the backend
// rejects the message a system message is shown instead of replies.
func (s *ChatService) Send(ctx context.Context, sess models.Session, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewValidationError("message", "Please enter a message")
	}
	if !sess.Valid() {
		return apperrors.ErrUnauthenticated
	}

	now := s.now()
	user := sess.User
	s.hub.Publish(user.ID, chat.Event{
		Kind:    chat.EventMessage,
		Message: chat.NewLocalMessage(models.SenderUser, text, now),
		At:      now,
	})

	if err := s.backend.SendChat(ctx, sess.Token, text); err != nil {
		s.logger.Error().Err(err).Str("user_id", string(user.ID)).Msg("Send message failed")
		s.hub.Publish(user.ID, chat.Event{
			Kind:    chat.EventMessage,
			Message: chat.NewLocalMessage(models.SenderSystem, sendFailedMessage, now),
			At:      now,
		})
		return err
	}

	replies := s.responder.Respond(text, user)
	s.hub.Dispatch(user.ID, chat.Schedule(replies, now, s.typing(), replyGap), now)
	s.logger.Debug().Str("user_id", string(user.ID)).Int("replies", len(replies)).Msg("Autoresponse scheduled")
	return nil
}

// Fetch loads the conversation and reports failures, for the live poller.
func (s *ChatService) Fetch(ctx context.Context, token string) ([]models.ChatMessage, error) {
	return s.backend.ChatMessages(ctx, token)
}

func (s *ChatService) Hub() *chat.Hub {
	return s.hub
}
