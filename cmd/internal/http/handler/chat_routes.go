package handler

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

type ChatService interface {
	Ask(ctx context.Context, message string) (string, error)
}

type DefaultChatRoute struct {
	ChatService ChatService
}

func NewChatRoute(chatService ChatService) *DefaultChatRoute {
	return &DefaultChatRoute{ChatService: chatService}
}

func (h *DefaultChatRoute) Ask(c echo.Context) error {
	answer, err := h.ChatService.Ask(c.Request().Context(), c.QueryParam("mensagem"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, &contract.ChatResponse{Answer: answer})
}
