package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StatusEvent é uma transição de status de task entregue via webhook.
// O log é append-only: este core só escreve, nunca lê.
type StatusEvent struct {
	ID         uuid.UUID
	TaskID     string
	TaskName   string
	FromStatus string
	ToStatus   string
	Editor     string
	OccurredAt time.Time
	ReceivedAt time.Time
}

type EventRepository struct {
	db *pgx.Conn
}

func NewEventRepository(databaseURL string) (*EventRepository, error) {
	conn, err := pgx.Connect(context.Background(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no postgres: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("banco não responde: %w", err)
	}

	repo := &EventRepository{db: conn}

	if err := repo.runMigrations(); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("falha nas migrations: %w", err)
	}

	return repo, nil
}

// Save insere um evento no log. Redelivery do mesmo webhook (mesma task,
// mesmo timestamp) é ignorada pelo ON CONFLICT: o log nunca é atualizado.
func (r *EventRepository) Save(ctx context.Context, e StatusEvent) (string, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}

	query := `
        INSERT INTO task_status_events
        (id, task_id, task_name, from_status, to_status, editor, occurred_at, received_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (task_id, occurred_at) DO NOTHING
        RETURNING id
    `

	var id string
	err := r.db.QueryRow(ctx, query,
		e.ID,
		e.TaskID,
		e.TaskName,
		e.FromStatus,
		e.ToStatus,
		e.Editor,
		e.OccurredAt,
		e.ReceivedAt,
	).Scan(&id)

	if err == pgx.ErrNoRows {
		// Conflito: evento já registrado, nada a fazer
		return "", nil
	}
	return id, err
}

func (r *EventRepository) Close(ctx context.Context) {
	r.db.Close(ctx)
}
