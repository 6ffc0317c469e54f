// Package app wires every command and query into the dispatch pipeline.
package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/app/command"
	"github.com/taskline/todo-api/internal/app/query"
	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// Dependencies carries everything the handlers and validators need.
type Dependencies struct {
	Identity ports.IdentityService
	Todos    ports.TodoRepository
	Validate *validator.Validate
	Log      zerolog.Logger
}

// BuildDispatcher registers all handlers and validators and returns the
// ready pipeline. Every request type gets a schema validator from its
// struct tags; the I/O-backed rules are attached alongside.
func BuildDispatcher(deps Dependencies) (*dispatch.Dispatcher, error) {
	d := dispatch.NewDispatcher(deps.Log)
	v := deps.Validate

	// Identity.
	dispatch.RegisterValidator(d, dispatch.Schema[command.Register](v))
	dispatch.RegisterValidator(d, command.UniqueEmail(deps.Identity))
	if err := dispatch.RegisterHandler(d, command.NewRegisterHandler(deps.Identity).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.Login](v))
	dispatch.RegisterValidator(d, command.PasswordIsCorrect(deps.Identity))
	if err := dispatch.RegisterHandler(d, command.NewLoginHandler(deps.Identity).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.DeleteUser](v))
	if err := dispatch.RegisterHandler(d, command.NewDeleteUserHandler(deps.Identity).Handle); err != nil {
		return nil, err
	}

	// Todo lists.
	dispatch.RegisterValidator(d, dispatch.Schema[command.CreateTodoList](v))
	dispatch.RegisterValidator(d, command.UniqueListTitle(deps.Todos))
	if err := dispatch.RegisterHandler(d, command.NewCreateTodoListHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.UpdateTodoList](v))
	dispatch.RegisterValidator(d, command.UniqueListTitleOnUpdate(deps.Todos))
	if err := dispatch.RegisterHandler(d, command.NewUpdateTodoListHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.DeleteTodoList](v))
	if err := dispatch.RegisterHandler(d, command.NewDeleteTodoListHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.PurgeTodoLists](v))
	if err := dispatch.RegisterHandler(d, command.NewPurgeTodoListsHandler(deps.Todos, deps.Identity).Handle); err != nil {
		return nil, err
	}

	// Todo items.
	dispatch.RegisterValidator(d, dispatch.Schema[command.CreateTodoItem](v))
	dispatch.RegisterValidator(d, command.ListExists(deps.Todos))
	if err := dispatch.RegisterHandler(d, command.NewCreateTodoItemHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.UpdateTodoItem](v))
	if err := dispatch.RegisterHandler(d, command.NewUpdateTodoItemHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[command.DeleteTodoItem](v))
	if err := dispatch.RegisterHandler(d, command.NewDeleteTodoItemHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	// Queries.
	if err := dispatch.RegisterHandler(d, query.NewGetTodoListsHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[query.GetTodoItemsWithPagination](v))
	if err := dispatch.RegisterHandler(d, query.NewGetTodoItemsWithPaginationHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(d, dispatch.Schema[query.ExportTodos](v))
	if err := dispatch.RegisterHandler(d, query.NewExportTodosHandler(deps.Todos).Handle); err != nil {
		return nil, err
	}

	return d, nil
}
