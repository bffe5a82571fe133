package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/service"
	"github.com/taskden/taskden/pkg/httpx"
	"github.com/taskden/taskden/pkg/slogx"
)

type TodoHandler struct {
	TodoService *service.TodoService
}

type todoBody struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      *domain.Status    `json:"status,omitempty"`
	Subtasks    *[]domain.Subtask `json:"subtasks,omitempty"`
}

type todoView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      domain.Status    `json:"status"`
	Subtasks    []domain.Subtask `json:"subtasks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toTodoView(t domain.Todo) todoView {
	subtasks := t.Subtasks
	if subtasks == nil {
		subtasks = []domain.Subtask{}
	}
	return todoView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Subtasks:    subtasks,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoViews(todos []domain.Todo) []todoView {
	views := make([]todoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, toTodoView(t))
	}
	return views
}

// HandleCreate persists a new todo for the caller.
//
//	@Summary		Create a todo
//	@Description	Title and description are required; status defaults to pending.
//	@Tags			Todos
//	@Accept			json
//	@Produce		json
//	@Param			body	body		todoBody		true	"Todo fields"
//	@Success		201		{object}	map[string]any	"message, todo"
//	@Failure		400		{object}	apiError		"Missing title or description"
//	@Failure		401		{object}	apiError		"Not authenticated"
//	@Router			/todo/create [post].
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	var req todoBody
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errMissingTodoFields.WriteError(w)
		return
	}

	in := service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		in.Status = *req.Status
	}
	if req.Subtasks != nil {
		in.Subtasks = *req.Subtasks
	}

	todo, err := h.TodoService.Create(ctx, user.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			errMissingTodoFields.WriteError(w)
		case errors.Is(err, service.ErrInvalidStatus):
			errInvalidStatus.WriteError(w)
		default:
			log.Error("todo creation failed", "err", err)
			errServer.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Todo created successfully",
		"todo":    toTodoView(todo),
	})
}

// HandleList returns all todos the caller owns.
//
//	@Summary	List todos
//	@Tags		Todos
//	@Produce	json
//	@Success	200	{object}	map[string]any	"message, todo[]"
//	@Failure	401	{object}	apiError		"Not authenticated"
//	@Router		/todo [get].
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	todos, err := h.TodoService.List(ctx, user.ID)
	if err != nil {
		log.Error("todo listing failed", "err", err)
		errServer.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Todos fetched successfully",
		"todo":    toTodoViews(todos),
	})
}

// HandleUpdate applies a partial update to an owned todo.
//
//	@Summary		Update a todo
//	@Description	Applies only the provided fields. Another user's todo is a 404.
//	@Tags			Todos
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Todo id"
//	@Param			body	body		todoBody		true	"Fields to change"
//	@Success		200		{object}	map[string]any	"message, updatedTodo"
//	@Failure		400		{object}	apiError		"Invalid fields"
//	@Failure		401		{object}	apiError		"Not authenticated"
//	@Failure		404		{object}	apiError		"No such todo for this user"
//	@Router			/todo/update/{id} [put].
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	var req struct {
		Title       *string           `json:"title"`
		Description *string           `json:"description"`
		Status      *domain.Status    `json:"status"`
		Subtasks    *[]domain.Subtask `json:"subtasks"`
	}
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errMissingTodoFields.WriteError(w)
		return
	}

	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Subtasks:    req.Subtasks,
	}

	todo, err := h.TodoService.Update(ctx, user.ID, r.PathValue("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			errMissingTodoFields.WriteError(w)
		case errors.Is(err, service.ErrInvalidStatus):
			errInvalidStatus.WriteError(w)
		case errors.Is(err, service.ErrTodoNotFound):
			errTodoNotFound.WriteError(w)
		default:
			log.Error("todo update failed", "err", err)
			errServer.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Todo updated successfully",
		"updatedTodo": toTodoView(todo),
	})
}

// HandleDelete removes an owned todo permanently.
//
//	@Summary	Delete a todo
//	@Tags		Todos
//	@Produce	json
//	@Param		id	path		string				true	"Todo id"
//	@Success	200	{object}	map[string]string	"message"
//	@Failure	401	{object}	apiError			"Not authenticated"
//	@Failure	404	{object}	apiError			"No such todo for this user"
//	@Router		/todo/delete/{id} [delete].
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	if err := h.TodoService.Delete(ctx, user.ID, r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrTodoNotFound):
			errTodoNotFound.WriteError(w)
		default:
			log.Error("todo deletion failed", "err", err)
			errServer.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Todo deleted successfully",
	})
}
