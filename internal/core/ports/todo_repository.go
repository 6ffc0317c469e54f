package ports

import (
	"context"

	"github.com/taskline/todo-api/internal/core/domain"
)

// TodoRepository defines persistence access for todo lists and their items.
type TodoRepository interface {
	CreateList(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error)
	UpdateList(ctx context.Context, list *domain.TodoList) error
	DeleteList(ctx context.Context, id string) error
	FindList(ctx context.Context, id string) (*domain.TodoList, error)
	FindListByTitle(ctx context.Context, title string) (*domain.TodoList, error)
	Lists(ctx context.Context) ([]domain.TodoList, error)
	PurgeLists(ctx context.Context) error

	CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error)
	UpdateItem(ctx context.Context, item *domain.TodoItem) error
	DeleteItem(ctx context.Context, id string) error
	FindItem(ctx context.Context, id string) (*domain.TodoItem, error)
	Items(ctx context.Context, listID string) ([]domain.TodoItem, error)
	// ItemsPage returns one page of items for a list (sorted by title) plus
	// the total item count for the list.
	ItemsPage(ctx context.Context, listID string, pageNumber, pageSize int) ([]domain.TodoItem, int64, error)
}
