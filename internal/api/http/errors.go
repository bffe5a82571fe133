package http

import (
	"net/http"

	"github.com/taskden/taskden/pkg/httpx"
)

// apiError is the uniform error body for the REST surface. Messages are
// short and human-readable; internals never leak through them.
type apiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

// WriteError writes this error to an HTTP response writer.
func (e *apiError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{"message": e.Message})
}

var (
	// errBadRequest covers malformed bodies and missing inputs.
	errBadRequest = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "Enter your credentials",
	}

	// errMissingTodoFields mirrors errBadRequest for the todo surface.
	errMissingTodoFields = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "Enter title and description",
	}

	// errInvalidStatus rejects out-of-enum status values.
	errInvalidStatus = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "Status must be pending or completed",
	}

	// errConflict reports a duplicate username or email at registration.
	errConflict = &apiError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Email or username already exists",
	}

	// errUserNotFound is the login-time lookup miss. Clients expect a 400
	// here rather than a 404.
	errUserNotFound = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "User not found",
	}

	// errInvalidPassword rejects a bad password on login.
	errInvalidPassword = &apiError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid password",
	}

	// errTokenMissing is the missing-cookie case on protected routes.
	errTokenMissing = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "Token not found",
	}

	// errUnauthorized covers invalid/expired tokens and deleted users.
	errUnauthorized = &apiError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Not authorized",
	}

	// errTodoNotFound covers both genuinely missing todos and todos owned
	// by someone else; the two are deliberately indistinguishable.
	errTodoNotFound = &apiError{
		StatusCode: http.StatusNotFound,
		Message:    "Todo not found",
	}

	// errAIService is the uniform upstream-model failure.
	errAIService = &apiError{
		StatusCode: http.StatusInternalServerError,
		Message:    "AI error",
	}

	// errServer is the generic catch-all.
	errServer = &apiError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Something went wrong",
	}
)
