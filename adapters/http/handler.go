package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
	"github.com/MauricioIPastora/portfolio-assistant/usecase"
	"github.com/MauricioIPastora/portfolio-assistant/utils/log"
)

// ChatHandler exposes the assistant pipeline over HTTP. It is stateless;
// everything it needs arrives in the request body.
type ChatHandler struct {
	assistant *usecase.AssistantService
}

func NewChatHandler(assistant *usecase.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// Chat handles POST /api/chat. Input problems come back as a 400 with a
// short description; downstream generation failures come back as a generic
// 500 so provider error detail never reaches the client.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.assistant.Answer(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoMessages):
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "Messages are required"})
		case errors.Is(err, usecase.ErrNoUserTurn):
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "No user message found"})
		default:
			log.WithCtx(c.Request().Context()).Error("chat API error", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "Internal server error"})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// HealthCheck handles GET /api/health
func (h *ChatHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
