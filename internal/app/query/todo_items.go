// Package query defines the read-side requests dispatched through the
// pipeline, together with their handlers.
package query

import (
	"context"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/ports"
)

// GetTodoLists returns every list.
type GetTodoLists struct{}

type GetTodoListsHandler struct {
	todos ports.TodoRepository
}

func NewGetTodoListsHandler(todos ports.TodoRepository) *GetTodoListsHandler {
	return &GetTodoListsHandler{todos: todos}
}

func (h *GetTodoListsHandler) Handle(ctx context.Context, _ GetTodoLists) ([]domain.TodoList, error) {
	return h.todos.Lists(ctx)
}

// GetTodoItemsWithPagination returns one page of a list's items.
type GetTodoItemsWithPagination struct {
	ListID     string `json:"list_id" validate:"required"`
	PageNumber int    `json:"page_number" validate:"gte=1"`
	PageSize   int    `json:"page_size" validate:"gte=1,lte=100"`
}

// PaginatedList is a single page plus the bookkeeping the boundary needs to
// render paging controls.
type PaginatedList[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page_number"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
}

func (p PaginatedList[T]) HasPreviousPage() bool { return p.PageNumber > 1 }
func (p PaginatedList[T]) HasNextPage() bool     { return p.PageNumber < p.TotalPages }

type GetTodoItemsWithPaginationHandler struct {
	todos ports.TodoRepository
}

func NewGetTodoItemsWithPaginationHandler(todos ports.TodoRepository) *GetTodoItemsWithPaginationHandler {
	return &GetTodoItemsWithPaginationHandler{todos: todos}
}

func (h *GetTodoItemsWithPaginationHandler) Handle(ctx context.Context, q GetTodoItemsWithPagination) (PaginatedList[domain.TodoItem], error) {
	if _, err := h.todos.FindList(ctx, q.ListID); err != nil {
		return PaginatedList[domain.TodoItem]{}, err
	}

	items, total, err := h.todos.ItemsPage(ctx, q.ListID, q.PageNumber, q.PageSize)
	if err != nil {
		return PaginatedList[domain.TodoItem]{}, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return PaginatedList[domain.TodoItem]{
		Items:      items,
		PageNumber: q.PageNumber,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}
