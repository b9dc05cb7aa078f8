package handlers

import (
	"net/http"

	"fleethvac/internal/services"

	"github.com/labstack/echo/v4"
)

type ChatHandlers struct {
	chat services.ChatService
}

func NewChatHandlers(chat services.ChatService) *ChatHandlers {
	return &ChatHandlers{chat: chat}
}

// Chat godoc
// @Summary Ask the fleet assistant
// @Description Answers from tenant documents. An unavailable search or model degrades the answer instead of failing.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body services.ChatRequest true "Message and prior turns"
// @Success 200 {object} models.ChatResponse
// @Failure 429 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /chat [post]
func (h *ChatHandlers) Chat(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	var req services.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.chat.Answer(c.Request().Context(), tenantID, actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
