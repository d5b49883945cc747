package dto

import "time"

const (
	// Stream e subject JetStream do pipeline de eventos de status
	StreamEvents        = "EVENTS"
	SubjectStatusEvents = "events.status"
)

// StatusEvent é o payload publicado em events.status quando o webhook do
// ClickUp entrega uma mudança de status. O consumidor (eventlog) só insere.
type StatusEvent struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	TaskName   string    `json:"task_name,omitempty"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Editor     string    `json:"editor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
