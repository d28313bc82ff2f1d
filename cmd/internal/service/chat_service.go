package service

import (
	"context"
	"strings"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/utils/apierror"
)

const MaxChatMessageLength = 500

type ChatClient interface {
	Chat(ctx context.Context, message string) (string, error)
}

type ChatService struct {
	Client   ChatClient
	Notifier notify.Notifier
}

func NewChatService(client ChatClient, notifier notify.Notifier) *ChatService {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &ChatService{Client: client, Notifier: notifier}
}

func (s *ChatService) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apierror.NewPreconditionError("Digite uma mensagem")
	}
	if len([]rune(message)) > MaxChatMessageLength {
		return "", apierror.NewPreconditionError("A mensagem deve ter no máximo %d caracteres", MaxChatMessageLength)
	}

	answer, err := s.Client.Chat(ctx, message)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "O assistente não respondeu"))
		return "", err
	}
	return answer, nil
}
