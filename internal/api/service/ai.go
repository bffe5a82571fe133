package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/pkg/genaix"
	"github.com/taskden/taskden/pkg/slogx"
)

// AIService drives the generative-model features: subtask generation and
// free-text parsing. The model is an external collaborator; its output is
// strictly validated before anything touches the store.
type AIService struct {
	Client genaix.Client
	Todos  *TodoService
}

// SubtaskSuggestion is one model-proposed subtask.
type SubtaskSuggestion struct {
	Text string `json:"text"`
}

// ParsedTodo is the structured interpretation of free-text input. Date and
// recurrence are verbatim model output, passed through for the client to use.
type ParsedTodo struct {
	Title      string `json:"title"`
	Date       string `json:"date,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
}

var subtaskSchema = &genaix.Schema{
	Type: "array",
	Items: &genaix.Schema{
		Type: "object",
		Properties: map[string]*genaix.Schema{
			"text": {Type: "string"},
		},
		Required: []string{"text"},
	},
}

var parseTodoSchema = &genaix.Schema{
	Type: "object",
	Properties: map[string]*genaix.Schema{
		"title":      {Type: "string"},
		"date":       {Type: "string"},
		"recurrence": {Type: "string"},
	},
	Required: []string{"title"},
}

// GenerateSubtasks asks the model for subtasks for the given todo and, on
// success, persists a new todo carrying them (owner = caller). Returns the
// created todo and the suggestions.
func (s *AIService) GenerateSubtasks(ctx context.Context, ownerID, title, description string) (domain.Todo, []SubtaskSuggestion, error) {
	log := slogx.FromContext(ctx)

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return domain.Todo{}, nil, ErrMissingFields
	}

	prompt := fmt.Sprintf("Generate exactly 5 clear subtasks for the todo: %q", title)

	raw, err := s.Client.Ask(ctx, prompt, subtaskSchema)
	if err != nil {
		return domain.Todo{}, nil, fmt.Errorf("ask model: %w", err)
	}

	var suggestions []SubtaskSuggestion
	if err := genaix.DecodeStrict(raw, subtaskSchema, &suggestions); err != nil {
		log.Warn("model returned unusable subtasks", "err", err)
		return domain.Todo{}, nil, err
	}

	subtasks := make([]domain.Subtask, 0, len(suggestions))
	for _, sg := range suggestions {
		subtasks = append(subtasks, domain.Subtask{Text: sg.Text})
	}

	todo, err := s.Todos.Create(ctx, ownerID, CreateTodoInput{
		Title:       title,
		Description: description,
		Subtasks:    subtasks,
	})
	if err != nil {
		return domain.Todo{}, nil, err
	}

	log.Info("subtasks generated",
		slog.String("todo_id", todo.ID),
		slog.Int("count", len(suggestions)),
	)
	return todo, suggestions, nil
}

// ParseTodo extracts a structured todo from free text. Nothing is persisted;
// the client decides what to do with the parse.
func (s *AIService) ParseTodo(ctx context.Context, input string) (ParsedTodo, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ParsedTodo{}, ErrMissingFields
	}

	prompt := fmt.Sprintf("Extract structured todo from: %q", input)

	raw, err := s.Client.Ask(ctx, prompt, parseTodoSchema)
	if err != nil {
		return ParsedTodo{}, fmt.Errorf("ask model: %w", err)
	}

	var parsed ParsedTodo
	if err := genaix.DecodeStrict(raw, parseTodoSchema, &parsed); err != nil {
		return ParsedTodo{}, err
	}
	return parsed, nil
}
