package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createTodo(t *testing.T, router *Router, cookie *http.Cookie, title, description string) map[string]any {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/todo/create", map[string]string{
		"title":       title,
		"description": description,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	todo, ok := decodeBody(t, rec)["todo"].(map[string]any)
	require.True(t, ok)
	return todo
}

func TestTodoCreateEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	cookie := registerUser(t, router, "alice")

	t.Run("creates with defaults", func(t *testing.T) {
		todo := createTodo(t, router, cookie, "Buy groceries", "Milk and eggs")
		require.NotEmpty(t, todo["id"])
		require.Equal(t, "Buy groceries", todo["title"])
		require.Equal(t, "pending", todo["status"])
		require.Equal(t, []any{}, todo["subtasks"])
	})

	t.Run("missing description", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/todo/create", map[string]string{
			"title": "only title",
		}, cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Enter title and description", decodeBody(t, rec)["message"])
	})

	t.Run("invalid status", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/todo/create", map[string]string{
			"title":       "t",
			"description": "d",
			"status":      "archived",
		}, cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires a session", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/todo/create", map[string]string{
			"title":       "t",
			"description": "d",
		}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Token not found", decodeBody(t, rec)["message"])
	})
}

func TestTodoListEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")

	createTodo(t, router, alice, "a1", "d")
	createTodo(t, router, alice, "a2", "d")
	createTodo(t, router, bob, "b1", "d")

	rec := doJSON(t, router, http.MethodGet, "/todo", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "Todos fetched successfully", body["message"])

	todos, ok := body["todo"].([]any)
	require.True(t, ok)
	require.Len(t, todos, 2)

	rec = doJSON(t, router, http.MethodGet, "/todo", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	todos, ok = decodeBody(t, rec)["todo"].([]any)
	require.True(t, ok)
	require.Len(t, todos, 1)
}

func TestTodoUpdateEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")

	todo := createTodo(t, router, alice, "original", "desc")
	id := todo["id"].(string)

	t.Run("owner patches status", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/todo/update/"+id, map[string]string{
			"status": "completed",
		}, alice)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Todo updated successfully", body["message"])

		updated, ok := body["updatedTodo"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "completed", updated["status"])
		require.Equal(t, "original", updated["title"])
	})

	t.Run("another user's todo is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/todo/update/"+id, map[string]string{
			"title": "hijacked",
		}, bob)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Todo not found", decodeBody(t, rec)["message"])
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/todo/update/does-not-exist", map[string]string{
			"title": "x",
		}, alice)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status is a 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/todo/update/"+id, map[string]string{
			"status": "paused",
		}, alice)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires a session", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/todo/update/"+id, map[string]string{
			"title": "x",
		}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTodoDeleteEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")

	todo := createTodo(t, router, alice, "t", "d")
	id := todo["id"].(string)

	t.Run("another user's todo is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/todo/delete/"+id, nil, bob)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/todo/delete/"+id, nil, alice)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Todo deleted successfully", decodeBody(t, rec)["message"])
	})

	t.Run("repeat delete is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/todo/delete/"+id, nil, alice)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
