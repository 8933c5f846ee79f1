// Package events phát sự kiện thay đổi todo ra bên ngoài (MQTT).
package events

import (
	"fmt"

	"github.com/biosecret/go-todo/models"
)

type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionImported Action = "imported"
)

// Event mô tả một thay đổi đã commit. Todo là nil với ActionImported.
type Event struct {
	Action  Action           `json:"action"`
	OwnerID int64            `json:"owner_id"`
	TodoID  int64            `json:"todo_id,omitempty"`
	Todo    *models.TodoItem `json:"todo,omitempty"`
	Count   int              `json:"count,omitempty"`
}

// Topic có dạng <prefix>/<owner_id>/<action>
func (e Event) Topic(prefix string) string {
	return fmt.Sprintf("%s/%d/%s", prefix, e.OwnerID, e.Action)
}

// Publisher nhận sự kiện sau khi transaction đã commit.
// Lỗi publish không làm hỏng thao tác gốc.
type Publisher interface {
	Publish(ev Event)
	Close()
}

type Noop struct{}

func (Noop) Publish(Event) {}
func (Noop) Close()        {}
