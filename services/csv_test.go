package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/biosecret/go-todo/events"
	"github.com/biosecret/go-todo/models"
)

func TestWriteCSV(t *testing.T) {
	todos := []models.TodoItem{
		{ID: 1, Title: "Buy milk", Description: "2%", Completed: false},
		{ID: 2, Title: "Quote \"this\"", Description: "a, b\nc", Completed: true},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, todos); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "id,title,description,completed\n" +
		"1,Buy milk,2%,false\n" +
		"2,\"Quote \"\"this\"\"\",\"a, b\nc\",true\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTodoService_Export(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if _, err := f.todos.Export(ctx, f.alice); !errors.Is(err, ErrNoContent) {
		t.Fatalf("Export() on empty owner error = %v, want ErrNoContent", err)
	}

	a := f.createTodo(t, f.alice, "a", "b", true)
	f.createTodo(t, f.bob, "bob", "other", false)

	todos, err := f.todos.Export(ctx, f.alice)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(todos) != 1 || todos[0] != *a {
		t.Errorf("Export() = %+v, want only %+v", todos, a)
	}
}

func TestTodoService_ImportSingleRow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	summary, err := f.todos.Import(ctx, f.alice, strings.NewReader("title,description,completed\na,b,true\n"))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary.Imported != 1 {
		t.Errorf("Imported = %d, want 1", summary.Imported)
	}

	todos, _ := f.todos.List(ctx, f.alice, ListQuery{})
	if len(todos) != 1 {
		t.Fatalf("List() = %+v, want one todo", todos)
	}
	got := todos[0]
	if got.Title != "a" || got.Description != "b" || !got.Completed || got.OwnerID != f.alice {
		t.Errorf("imported todo = %+v", got)
	}

	bobs, _ := f.todos.List(ctx, f.bob, ListQuery{})
	if len(bobs) != 0 {
		t.Errorf("import leaked into other user: %+v", bobs)
	}
}

func TestTodoService_ImportParsing(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	input := "\ufeffID, Completed ,Title,Description,extra\n" +
		"9,TRUE,one,d1,x\n" +
		"9,yes,two,d2,x\n" +
		"9,,three,d3,x\n" +
		"9, True ,four,d4,x\n"
	summary, err := f.todos.Import(ctx, f.alice, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary.Imported != 4 || summary.Message == "" {
		t.Errorf("summary = %+v", summary)
	}

	todos, _ := f.todos.List(ctx, f.alice, ListQuery{})
	want := map[string]bool{"one": true, "two": false, "three": false, "four": true}
	for _, todo := range todos {
		if todo.Completed != want[todo.Title] {
			t.Errorf("%s completed = %v, want %v", todo.Title, todo.Completed, want[todo.Title])
		}
		if todo.ID == 9 {
			t.Error("id column from the file must be ignored")
		}
	}
	if got := f.publisher.actions(); len(got) != 1 || got[0] != events.ActionImported {
		t.Errorf("events = %v", got)
	}
}

func TestTodoService_ImportRejectsWholeFile(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"missing column", "title,description\na,b\n"},
		{"short row", "title,description,completed\na,b,true\nc,d\n"},
		{"empty title", "title,description,completed\na,b,true\n,d,false\n"},
		{"empty description", "title,description,completed\na,b,true\nc,,false\n"},
		{"bad quoting", "title,description,completed\n\"a,b,true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			ctx := context.Background()

			_, err := f.todos.Import(ctx, f.alice, strings.NewReader(tt.input))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Import() error = %v, want ErrValidation", err)
			}
			todos, _ := f.todos.List(ctx, f.alice, ListQuery{})
			if len(todos) != 0 {
				t.Errorf("rejected import committed %d rows", len(todos))
			}
		})
	}
}

func TestTodoService_ImportHeaderOnly(t *testing.T) {
	f := setupFixture(t)
	summary, err := f.todos.Import(context.Background(), f.alice, strings.NewReader("title,description,completed\n"))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary.Imported != 0 {
		t.Errorf("Imported = %d, want 0", summary.Imported)
	}
	if len(f.publisher.actions()) != 0 {
		t.Error("empty import should not publish")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.createTodo(t, f.alice, "Quote \"this\"", "a, b", true)
	f.createTodo(t, f.alice, "plain", "text", false)

	exported, err := f.todos.Export(ctx, f.alice)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exported); err != nil {
		t.Fatal(err)
	}
	if _, err := f.todos.Import(ctx, f.bob, &buf); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	copied, _ := f.todos.List(ctx, f.bob, ListQuery{})
	if len(copied) != len(exported) {
		t.Fatalf("copied %d todos, want %d", len(copied), len(exported))
	}
	for i := range copied {
		if copied[i].Title != exported[i].Title || copied[i].Description != exported[i].Description ||
			copied[i].Completed != exported[i].Completed || copied[i].OwnerID != f.bob {
			t.Errorf("row %d = %+v, want copy of %+v", i, copied[i], exported[i])
		}
	}
}
