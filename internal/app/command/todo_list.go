package command

import (
	"context"
	"time"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/identity"
	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// CreateTodoList creates a titled, optionally colour-coded list.
type CreateTodoList struct {
	Title  string `json:"title" validate:"required,max=200"`
	Colour string `json:"colour" validate:"omitempty,oneof=#FFFFFF #FF5733 #FFC300 #FFFF66 #CCFF99 #6666FF #9966CC #999999"`
}

type CreateTodoListHandler struct {
	todos ports.TodoRepository
}

func NewCreateTodoListHandler(todos ports.TodoRepository) *CreateTodoListHandler {
	return &CreateTodoListHandler{todos: todos}
}

func (h *CreateTodoListHandler) Handle(ctx context.Context, cmd CreateTodoList) (string, error) {
	colour := cmd.Colour
	if colour == "" {
		colour = domain.ColourWhite
	}

	now := time.Now().UTC()
	list, err := h.todos.CreateList(ctx, &domain.TodoList{
		Title:     cmd.Title,
		Colour:    colour,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return list.ID, nil
}

// UpdateTodoList renames or recolours an existing list.
type UpdateTodoList struct {
	ID     string `json:"id" validate:"required"`
	Title  string `json:"title" validate:"required,max=200"`
	Colour string `json:"colour" validate:"omitempty,oneof=#FFFFFF #FF5733 #FFC300 #FFFF66 #CCFF99 #6666FF #9966CC #999999"`
}

type UpdateTodoListHandler struct {
	todos ports.TodoRepository
}

func NewUpdateTodoListHandler(todos ports.TodoRepository) *UpdateTodoListHandler {
	return &UpdateTodoListHandler{todos: todos}
}

func (h *UpdateTodoListHandler) Handle(ctx context.Context, cmd UpdateTodoList) (struct{}, error) {
	list, err := h.todos.FindList(ctx, cmd.ID)
	if err != nil {
		return struct{}{}, err
	}

	list.Title = cmd.Title
	if cmd.Colour != "" {
		list.Colour = cmd.Colour
	}
	list.UpdatedAt = time.Now().UTC()

	return struct{}{}, h.todos.UpdateList(ctx, list)
}

// DeleteTodoList removes a list and its items.
type DeleteTodoList struct {
	ID string `json:"id" validate:"required"`
}

type DeleteTodoListHandler struct {
	todos ports.TodoRepository
}

func NewDeleteTodoListHandler(todos ports.TodoRepository) *DeleteTodoListHandler {
	return &DeleteTodoListHandler{todos: todos}
}

func (h *DeleteTodoListHandler) Handle(ctx context.Context, cmd DeleteTodoList) (struct{}, error) {
	return struct{}{}, h.todos.DeleteList(ctx, cmd.ID)
}

// PurgeTodoLists deletes every list. Guarded by the CanPurge policy against
// the caller's current store-side roles, not their token claims.
type PurgeTodoLists struct {
	CallerID string `json:"-" validate:"required"`
}

type PurgeTodoListsHandler struct {
	todos    ports.TodoRepository
	identity ports.IdentityService
}

func NewPurgeTodoListsHandler(todos ports.TodoRepository, svc ports.IdentityService) *PurgeTodoListsHandler {
	return &PurgeTodoListsHandler{todos: todos, identity: svc}
}

func (h *PurgeTodoListsHandler) Handle(ctx context.Context, cmd PurgeTodoLists) (struct{}, error) {
	ok, err := h.identity.Authorize(ctx, cmd.CallerID, identity.PolicyCanPurge)
	if err != nil {
		return struct{}{}, err
	}
	if !ok {
		return struct{}{}, domain.ErrForbidden
	}
	return struct{}{}, h.todos.PurgeLists(ctx)
}

// UniqueListTitle rejects a create when another list already has the title.
func UniqueListTitle(todos ports.TodoRepository) func(ctx context.Context, cmd CreateTodoList) ([]dispatch.FieldError, error) {
	return func(ctx context.Context, cmd CreateTodoList) ([]dispatch.FieldError, error) {
		if cmd.Title == "" {
			return nil, nil
		}
		return checkTitleFree(ctx, todos, cmd.Title, "")
	}
}

// UniqueListTitleOnUpdate is UniqueListTitle excluding the list being renamed.
func UniqueListTitleOnUpdate(todos ports.TodoRepository) func(ctx context.Context, cmd UpdateTodoList) ([]dispatch.FieldError, error) {
	return func(ctx context.Context, cmd UpdateTodoList) ([]dispatch.FieldError, error) {
		if cmd.Title == "" {
			return nil, nil
		}
		return checkTitleFree(ctx, todos, cmd.Title, cmd.ID)
	}
}

func checkTitleFree(ctx context.Context, todos ports.TodoRepository, title, excludeID string) ([]dispatch.FieldError, error) {
	existing, err := todos.FindListByTitle(ctx, title)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if existing.ID == excludeID {
		return nil, nil
	}
	return []dispatch.FieldError{{
		Field:   "title",
		Message: "The specified title already exists.",
	}}, nil
}
