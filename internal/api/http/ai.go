package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskden/taskden/internal/api/service"
	"github.com/taskden/taskden/pkg/genaix"
	"github.com/taskden/taskden/pkg/httpx"
	"github.com/taskden/taskden/pkg/slogx"
)

type AIHandler struct {
	AIService *service.AIService
}

type subtasksRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type parseRequest struct {
	Input string `json:"input"`
}

// HandleSubtasks asks the model for subtasks and persists a new todo
// carrying them.
//
//	@Summary		Generate subtasks
//	@Description	Asks the generative model for five subtasks and creates a todo with them.
//	@Tags			AI
//	@Accept			json
//	@Produce		json
//	@Param			body	body		subtasksRequest	true	"Todo title and description"
//	@Success		200		{object}	map[string]any	"subtasks[{text}]"
//	@Failure		400		{object}	apiError		"Missing title or description"
//	@Failure		401		{object}	apiError		"Not authenticated"
//	@Failure		500		{object}	apiError		"Model failure or unusable output"
//	@Router			/ai/subtasks [post].
func (h *AIHandler) HandleSubtasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	var req subtasksRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errMissingTodoFields.WriteError(w)
		return
	}

	_, suggestions, err := h.AIService.GenerateSubtasks(ctx, user.ID, req.Title, req.Description)
	if err != nil {
		writeAIError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"subtasks": suggestions,
	})
}

// HandleParse turns free-text input into a structured todo suggestion.
// Nothing is persisted.
//
//	@Summary		Parse free text
//	@Description	Extracts a structured todo (title, optional date and recurrence) from natural language.
//	@Tags			AI
//	@Accept			json
//	@Produce		json
//	@Param			body	body		parseRequest	true	"Free-text input"
//	@Success		200		{object}	map[string]any	"todo{title,date?,recurrence?}"
//	@Failure		400		{object}	apiError		"Missing input"
//	@Failure		401		{object}	apiError		"Not authenticated"
//	@Failure		500		{object}	apiError		"Model failure or unusable output"
//	@Router			/ai/parse [post].
func (h *AIHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if _, ok := userFromContext(ctx); !ok {
		errUnauthorized.WriteError(w)
		return
	}

	var req parseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	parsed, err := h.AIService.ParseTodo(ctx, req.Input)
	if err != nil {
		writeAIError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"todo": parsed,
	})
}

func writeAIError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		errMissingTodoFields.WriteError(w)
	case errors.Is(err, genaix.ErrUpstream), errors.Is(err, genaix.ErrBadResponse):
		log.Error("generative model call failed", "err", err)
		errAIService.WriteError(w)
	default:
		log.Error("ai request failed", "err", err)
		errServer.WriteError(w)
	}
}
