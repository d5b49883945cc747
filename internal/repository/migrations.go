package repository

import (
	"context"
	"log"
)

func (r *EventRepository) runMigrations() error {
	log.Println("Verificando schema do event log...")

	queries := []struct {
		name  string
		query string
	}{
		{
			name: "001_task_status_events",
			query: `CREATE TABLE IF NOT EXISTS task_status_events (
				id UUID PRIMARY KEY,
				task_id VARCHAR(100) NOT NULL,
				task_name TEXT,
				from_status VARCHAR(100),
				to_status VARCHAR(100),
				editor VARCHAR(100),
				occurred_at TIMESTAMP NOT NULL,
				received_at TIMESTAMP DEFAULT NOW(),
				UNIQUE(task_id, occurred_at)
			);`,
		},
		{
			name:  "002_idx_task_id",
			query: "CREATE INDEX IF NOT EXISTS idx_events_task_id ON task_status_events(task_id);",
		},
		{
			name:  "003_idx_editor",
			query: "CREATE INDEX IF NOT EXISTS idx_events_editor ON task_status_events(editor);",
		},
	}

	for _, m := range queries {
		if _, err := r.db.Exec(context.Background(), m.query); err != nil {
			log.Printf("Erro na migration [%s]: %v", m.name, err)
			// Seguimos para as próximas; erro "já existe" não deve derrubar o serviço
		}
	}

	log.Println("Migrations concluídas.")
	return nil
}
