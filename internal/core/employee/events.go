package employee

import (
	"context"
	"time"
)

// EventType は社員変更イベントの種別です。
type EventType string

const (
	EventCreated EventType = "employee.created"
	EventUpdated EventType = "employee.updated"
	EventDeleted EventType = "employee.deleted"
)

// Event は社員の変更通知です。削除イベントでは Employee は nil です。
type Event struct {
	Type       EventType `json:"type"`
	EmployeeID string    `json:"employeeId"`
	Employee   *Dto      `json:"employee,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher は変更イベントの送信先を抽象化します。
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, Event) error {
	return nil
}
