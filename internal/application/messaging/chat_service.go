package messaging

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatService handles two-party conversations
type ChatService struct {
	chatRepo       messaging.ChatRepository
	messageRepo    messaging.MessageRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

func NewChatService(chatRepo messaging.ChatRepository, messageRepo messaging.MessageRepository, logger *zap.Logger) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ChatService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Open finds or creates the chat between two users. The same pair always
// resolves to one chat regardless of who opens it.
func (s *ChatService) Open(ctx context.Context, selfEmail, otherEmail string) (*ChatResponse, error) {
	chat, err := s.chatRepo.FindByParticipants(ctx, selfEmail, otherEmail)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		chat, err = messaging.NewChat(selfEmail, otherEmail)
		if err != nil {
			return nil, err
		}
		if err := s.chatRepo.Save(ctx, chat); err != nil {
			return nil, err
		}
	}

	response := ToChatResponse(chat, selfEmail)
	return &response, nil
}

// List returns the user's chats, most recently active first
func (s *ChatService) List(ctx context.Context, selfEmail string) ([]ChatResponse, error) {
	chats, err := s.chatRepo.FindByUser(ctx, selfEmail)
	if err != nil {
		return nil, err
	}
	responses := make([]ChatResponse, len(chats))
	for i := range chats {
		responses[i] = ToChatResponse(&chats[i], selfEmail)
	}
	return responses, nil
}

// Send appends a message to the chat and notifies the counterpart
func (s *ChatService) Send(ctx context.Context, senderEmail string, chatID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderEmail) {
		return nil, shared.ErrForbidden
	}

	message, err := messaging.NewMessage(chatID, senderEmail, req.Text, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, err
	}

	chat.Touch(message.Preview(), message.SentAt)
	if err := s.chatRepo.Save(ctx, chat); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := messaging.NewMessageSentEvent(chat, message)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish chat message event",
				zap.String("chat_id", chatID.String()),
				zap.Error(err),
			)
		}
	}

	response := ToMessageResponse(message)
	return &response, nil
}

// History returns the chat's messages oldest first. Only participants may read.
func (s *ChatService) History(ctx context.Context, selfEmail string, chatID uuid.UUID, limit int) ([]MessageResponse, error) {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(selfEmail) {
		return nil, shared.ErrForbidden
	}

	messages, err := s.messageRepo.FindByChat(ctx, chatID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses, nil
}
