package query

import (
	"context"

	"github.com/gocarina/gocsv"

	"github.com/taskline/todo-api/internal/api/metrics"
	"github.com/taskline/todo-api/internal/core/ports"
)

// ExportTodos renders every item of a list as a CSV file.
type ExportTodos struct {
	ListID string `json:"list_id" validate:"required"`
}

// ExportedFile is the finished CSV, named after the list.
type ExportedFile struct {
	FileName string
	Content  []byte
}

// todoItemRecord is the CSV row shape for an exported item.
type todoItemRecord struct {
	ID       string `csv:"Id"`
	Title    string `csv:"Title"`
	Done     bool   `csv:"Done"`
	Priority int    `csv:"Priority"`
	Note     string `csv:"Note"`
}

type ExportTodosHandler struct {
	todos ports.TodoRepository
}

func NewExportTodosHandler(todos ports.TodoRepository) *ExportTodosHandler {
	return &ExportTodosHandler{todos: todos}
}

func (h *ExportTodosHandler) Handle(ctx context.Context, q ExportTodos) (ExportedFile, error) {
	list, err := h.todos.FindList(ctx, q.ListID)
	if err != nil {
		return ExportedFile{}, err
	}

	items, err := h.todos.Items(ctx, q.ListID)
	if err != nil {
		return ExportedFile{}, err
	}

	records := make([]todoItemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, todoItemRecord{
			ID:       it.ID,
			Title:    it.Title,
			Done:     it.Done,
			Priority: int(it.Priority),
			Note:     it.Note,
		})
	}

	content, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return ExportedFile{}, err
	}

	metrics.TodoExportsTotal.Inc()
	return ExportedFile{FileName: list.Title + ".csv", Content: content}, nil
}
