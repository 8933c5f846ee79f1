package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/events"
	"github.com/biosecret/go-todo/models"
)

var exportHeader = []string{"id", "title", "description", "completed"}

var importColumns = []string{"title", "description", "completed"}

// Export trả về toàn bộ todo của người gọi, ErrNoContent nếu không có todo nào
func (s *TodoService) Export(ctx context.Context, caller int64) ([]models.TodoItem, error) {
	todos, err := s.List(ctx, caller, ListQuery{})
	if err != nil {
		return nil, err
	}
	if len(todos) == 0 {
		return nil, newError(ErrNoContent, "no todos to export")
	}
	return todos, nil
}

// WriteCSV ghi header id,title,description,completed rồi mỗi todo một dòng
func WriteCSV(w io.Writer, todos []models.TodoItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, todo := range todos {
		record := []string{
			strconv.FormatInt(todo.ID, 10),
			todo.Title,
			todo.Description,
			strconv.FormatBool(todo.Completed),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import đọc CSV và tạo todo cho mỗi dòng trong một transaction.
// Bất kỳ dòng lỗi nào cũng làm hỏng toàn bộ lần import, không dòng nào được ghi.
func (s *TodoService) Import(ctx context.Context, caller int64, r io.Reader) (models.ImportSummary, error) {
	todos, err := parseImport(r, caller)
	if err != nil {
		return models.ImportSummary{}, err
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO todos (title, description, completed, owner_id) VALUES ($1, $2, $3, $4) RETURNING id")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range todos {
			t := &todos[i]
			if err := stmt.QueryRowContext(ctx, t.Title, t.Description, t.Completed, t.OwnerID).Scan(&t.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.ImportSummary{}, fmt.Errorf("failed to import todos: %w", err)
	}

	s.logger.Info("csv imported", "owner_id", caller, "count", len(todos))
	if len(todos) > 0 {
		s.events.Publish(events.Event{Action: events.ActionImported, OwnerID: caller, Count: len(todos)})
	}
	return models.ImportSummary{Message: "CSV imported successfully", Imported: len(todos)}, nil
}

func parseImport(r io.Reader, caller int64) ([]models.TodoItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, newError(ErrValidation, "CSV file is empty")
	}
	if err != nil {
		return nil, newError(ErrValidation, "invalid CSV: %s", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return nil, newError(ErrValidation, "CSV header is missing column %q", col)
		}
	}

	todos := []models.TodoItem{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(ErrValidation, "invalid CSV: %s", err)
		}
		line, _ := cr.FieldPos(0)

		req := models.TodoRequest{
			Title:       record[index["title"]],
			Description: record[index["description"]],
			Completed:   strings.EqualFold(strings.TrimSpace(record[index["completed"]]), "true"),
		}
		if err := req.Validate(); err != nil {
			return nil, newError(ErrValidation, "CSV line %d: %s", line, err)
		}
		todos = append(todos, models.TodoItem{
			Title:       req.Title,
			Description: req.Description,
			Completed:   req.Completed,
			OwnerID:     caller,
		})
	}
	return todos, nil
}
