package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/events"
	"github.com/biosecret/go-todo/models"
	"github.com/charmbracelet/log"
)

const todoColumns = "id, title, description, completed, owner_id"

// orderColumns là danh sách cột được phép sắp xếp
var orderColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"description": "description",
	"completed":   "completed",
}

// ListQuery gom các bộ lọc của GET /todo/. Giá trị zero sắp xếp tăng dần theo id.
type ListQuery struct {
	Completed  *bool
	Search     string
	OrderBy    string
	Descending bool
}

// TodoService thực hiện mọi thao tác trên todo, luôn lọc theo owner_id của người gọi
type TodoService struct {
	db     *sql.DB
	events events.Publisher
	logger *log.Logger
}

func NewTodoService(db *sql.DB, publisher events.Publisher, logger *log.Logger) *TodoService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TodoService{db: db, events: publisher, logger: logger}
}

// Create tạo todo mới với owner là người gọi
func (s *TodoService) Create(ctx context.Context, caller int64, req models.TodoRequest) (*models.TodoItem, error) {
	if err := req.Validate(); err != nil {
		return nil, newError(ErrValidation, "%s", err)
	}

	todo := &models.TodoItem{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		OwnerID:     caller,
	}
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return insertTodo(ctx, tx, todo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Debug("todo created", "todo_id", todo.ID, "owner_id", caller)
	s.events.Publish(events.Event{Action: events.ActionCreated, OwnerID: caller, TodoID: todo.ID, Todo: todo})
	return todo, nil
}

func insertTodo(ctx context.Context, tx *sql.Tx, todo *models.TodoItem) error {
	return tx.QueryRowContext(ctx,
		"INSERT INTO todos (title, description, completed, owner_id) VALUES ($1, $2, $3, $4) RETURNING id",
		todo.Title, todo.Description, todo.Completed, todo.OwnerID,
	).Scan(&todo.ID)
}

// Get lấy một todo của người gọi
func (s *TodoService) Get(ctx context.Context, caller, id int64) (*models.TodoItem, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE id = $1 AND owner_id = $2", id, caller)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, todoNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update ghi đè title, description và completed. owner_id không bao giờ thay đổi.
func (s *TodoService) Update(ctx context.Context, caller, id int64, req models.TodoRequest) (*models.TodoItem, error) {
	if err := req.Validate(); err != nil {
		return nil, newError(ErrValidation, "%s", err)
	}
	return s.mutate(ctx, caller, id,
		"UPDATE todos SET title = $1, description = $2, completed = $3 WHERE id = $4 AND owner_id = $5 RETURNING "+todoColumns,
		req.Title, req.Description, req.Completed, id, caller,
	)
}

// PatchCompleted chỉ thay đổi cờ completed
func (s *TodoService) PatchCompleted(ctx context.Context, caller, id int64, completed bool) (*models.TodoItem, error) {
	return s.mutate(ctx, caller, id,
		"UPDATE todos SET completed = $1 WHERE id = $2 AND owner_id = $3 RETURNING "+todoColumns,
		completed, id, caller,
	)
}

func (s *TodoService) mutate(ctx context.Context, caller, id int64, query string, args ...any) (*models.TodoItem, error) {
	var todo *models.TodoItem
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		todo, err = scanTodo(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return todoNotFound(id)
		}
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.events.Publish(events.Event{Action: events.ActionUpdated, OwnerID: caller, TodoID: id, Todo: todo})
	return todo, nil
}

// Delete xoá hẳn todo, không giữ lại lịch sử
func (s *TodoService) Delete(ctx context.Context, caller, id int64) error {
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE id = $1 AND owner_id = $2", id, caller)
		if err != nil {
			return err
		}
		count, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return todoNotFound(id)
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Debug("todo deleted", "todo_id", id, "owner_id", caller)
	s.events.Publish(events.Event{Action: events.ActionDeleted, OwnerID: caller, TodoID: id})
	return nil
}

// List trả về toàn bộ todo của người gọi khớp bộ lọc, không phân trang
func (s *TodoService) List(ctx context.Context, caller int64, q ListQuery) ([]models.TodoItem, error) {
	query, args := buildListQuery(caller, q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.TodoItem{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// buildListQuery đánh số tham số theo thứ tự xuất hiện, SQLite yêu cầu điều này
func buildListQuery(caller int64, q ListQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + todoColumns + " FROM todos WHERE owner_id = $1")
	args := []any{caller}

	if q.Search != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
		n := len(args)
		fmt.Fprintf(&sb, ` AND (LOWER(title) LIKE $%d ESCAPE '\' OR LOWER(description) LIKE $%d ESCAPE '\')`, n, n)
	}
	if q.Completed != nil {
		args = append(args, *q.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	column := orderColumn(q.OrderBy)
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	sb.WriteString(" ORDER BY " + column + " " + direction)
	if column != "id" {
		sb.WriteString(", id " + direction)
	}
	return sb.String(), args
}

// orderColumn trả về "id" với mọi khoá ngoài danh sách cho phép
func orderColumn(key string) string {
	if column, ok := orderColumns[strings.ToLower(strings.TrimSpace(key))]; ok {
		return column
	}
	return "id"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.TodoItem, error) {
	var todo models.TodoItem
	if err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.OwnerID); err != nil {
		return nil, err
	}
	return &todo, nil
}
