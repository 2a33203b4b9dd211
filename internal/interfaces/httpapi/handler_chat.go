package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

const maxChatBodyBytes = 64 << 10

func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.PostChatMessage")
	defer span.End()

	var req chatMessageRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	history := make([]usecase.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, usecase.ChatTurn{Role: turn.Role, Content: turn.Content})
	}

	reply := h.chat.Reply(ctx, usecase.ChatInput{
		Message: req.Message,
		League:  req.League,
		History: history,
	})

	writeSuccess(ctx, w, http.StatusOK, reply)
}
