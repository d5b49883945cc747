package clickup

import "strings"

// Task é o registro de task como vem da API v2 do ClickUp.
// Consumido, nunca modificado.
type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status struct {
		Status string `json:"status"`
	} `json:"status"`
	Assignees    []Assignee    `json:"assignees"`
	CustomFields []CustomField `json:"custom_fields"`
	DateUpdated  string        `json:"date_updated"`
}

type Assignee struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CustomField carrega Value como interface{} porque o ClickUp varia o tipo
// conforme o campo (string para url, número para dropdown, etc)
type CustomField struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// tasksPage é uma página da resposta de GET /list/{id}/task
type tasksPage struct {
	Tasks    []Task `json:"tasks"`
	LastPage bool   `json:"last_page"`
}

// ReviewLink devolve a URL de review do Frame.io anexada na task, ou vazio.
// Procuramos primeiro por nome de campo, depois por qualquer campo url.
func (t Task) ReviewLink() string {
	for _, f := range t.CustomFields {
		if strings.Contains(strings.ToLower(f.Name), "frame") {
			if s, ok := f.Value.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, f := range t.CustomFields {
		if f.Type == "url" {
			if s, ok := f.Value.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Editor devolve o username do primeiro assignee (o editor dono da task)
func (t Task) Editor() string {
	if len(t.Assignees) == 0 {
		return "desconhecido"
	}
	return t.Assignees[0].Username
}
