package command

import (
	"context"
	"time"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// CreateTodoItem adds an item to an existing list.
type CreateTodoItem struct {
	ListID string `json:"list_id" validate:"required"`
	Title  string `json:"title" validate:"required,max=200"`
	Note   string `json:"note" validate:"max=2000"`
}

type CreateTodoItemHandler struct {
	todos ports.TodoRepository
}

func NewCreateTodoItemHandler(todos ports.TodoRepository) *CreateTodoItemHandler {
	return &CreateTodoItemHandler{todos: todos}
}

func (h *CreateTodoItemHandler) Handle(ctx context.Context, cmd CreateTodoItem) (string, error) {
	now := time.Now().UTC()
	item, err := h.todos.CreateItem(ctx, &domain.TodoItem{
		ListID:    cmd.ListID,
		Title:     cmd.Title,
		Note:      cmd.Note,
		Priority:  domain.PriorityNone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

// UpdateTodoItem rewrites an item's mutable fields.
type UpdateTodoItem struct {
	ID       string               `json:"id" validate:"required"`
	Title    string               `json:"title" validate:"required,max=200"`
	Note     string               `json:"note" validate:"max=2000"`
	Priority domain.PriorityLevel `json:"priority" validate:"gte=0,lte=3"`
	Done     bool                 `json:"done"`
}

type UpdateTodoItemHandler struct {
	todos ports.TodoRepository
}

func NewUpdateTodoItemHandler(todos ports.TodoRepository) *UpdateTodoItemHandler {
	return &UpdateTodoItemHandler{todos: todos}
}

func (h *UpdateTodoItemHandler) Handle(ctx context.Context, cmd UpdateTodoItem) (struct{}, error) {
	item, err := h.todos.FindItem(ctx, cmd.ID)
	if err != nil {
		return struct{}{}, err
	}

	item.Title = cmd.Title
	item.Note = cmd.Note
	item.Priority = cmd.Priority
	item.Done = cmd.Done
	item.UpdatedAt = time.Now().UTC()

	return struct{}{}, h.todos.UpdateItem(ctx, item)
}

// DeleteTodoItem removes a single item.
type DeleteTodoItem struct {
	ID string `json:"id" validate:"required"`
}

type DeleteTodoItemHandler struct {
	todos ports.TodoRepository
}

func NewDeleteTodoItemHandler(todos ports.TodoRepository) *DeleteTodoItemHandler {
	return &DeleteTodoItemHandler{todos: todos}
}

func (h *DeleteTodoItemHandler) Handle(ctx context.Context, cmd DeleteTodoItem) (struct{}, error) {
	return struct{}{}, h.todos.DeleteItem(ctx, cmd.ID)
}

// ListExists rejects item creation against an unknown list, so the handler
// never has to deal with orphan items.
func ListExists(todos ports.TodoRepository) func(ctx context.Context, cmd CreateTodoItem) ([]dispatch.FieldError, error) {
	return func(ctx context.Context, cmd CreateTodoItem) ([]dispatch.FieldError, error) {
		if cmd.ListID == "" {
			return nil, nil
		}
		if _, err := todos.FindList(ctx, cmd.ListID); err != nil {
			if domain.IsNotFound(err) {
				return []dispatch.FieldError{{
					Field:   "list_id",
					Message: "The specified list does not exist.",
				}}, nil
			}
			return nil, err
		}
		return nil, nil
	}
}
