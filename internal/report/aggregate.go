package report

import (
	"sort"
	"strings"
	"time"

	"github.com/vncsrmro/audiovisual-sub001/internal/classify"
	"github.com/vncsrmro/audiovisual-sub001/internal/clickup"
	"github.com/vncsrmro/audiovisual-sub001/internal/feedback"
)

// EditorStats é a linha de métricas por editor exibida nos gráficos.
type EditorStats struct {
	Editor           string                    `json:"editor"`
	TasksTotal       int                       `json:"tasks_total"`
	TasksByStatus    map[string]int            `json:"tasks_by_status"`
	TasksWithReview  int                       `json:"tasks_with_review"`
	CommentsReceived int                       `json:"comments_received"`
	Categories       map[classify.Category]int `json:"categories"`
	FailedLinks      int                       `json:"failed_links"`
}

// Dashboard é o payload agregado que alimenta a camada de apresentação.
type Dashboard struct {
	GeneratedAt    time.Time                 `json:"generated_at"`
	Editors        []EditorStats             `json:"editors"`
	CategoryTotals map[classify.Category]int `json:"category_totals"`
	TotalComments  int                       `json:"total_comments"`
	TotalTasks     int                       `json:"total_tasks"`
}

// Build cruza as tasks do ClickUp com os Feedbacks extraídos do Frame.io e
// produz as métricas por editor. Função pura e determinística: mesma entrada,
// mesmo resultado, sem estado escondido entre chamadas.
func Build(tasks []clickup.Task, fbs []feedback.Feedback, now time.Time) Dashboard {
	// Indexa os feedbacks pela URL normalizada E pela crua, porque o link na
	// task pode vir sem scheme enquanto o extractor devolve com https://
	byURL := make(map[string]feedback.Feedback, len(fbs))
	for _, fb := range fbs {
		byURL[fb.SourceURL] = fb
		byURL[stripScheme(fb.SourceURL)] = fb
	}

	stats := make(map[string]*EditorStats)
	categoryTotals := make(map[classify.Category]int)
	totalComments := 0

	for _, t := range tasks {
		editor := t.Editor()
		s, ok := stats[editor]
		if !ok {
			s = &EditorStats{
				Editor:        editor,
				TasksByStatus: make(map[string]int),
				Categories:    make(map[classify.Category]int),
			}
			stats[editor] = s
		}

		s.TasksTotal++
		if t.Status.Status != "" {
			s.TasksByStatus[t.Status.Status]++
		}

		link := t.ReviewLink()
		if link == "" {
			continue
		}
		s.TasksWithReview++

		fb, found := byURL[link]
		if !found {
			fb, found = byURL[stripScheme(link)]
		}
		if !found {
			continue
		}

		if fb.ErrorMessage != "" {
			s.FailedLinks++
			continue
		}

		for _, cc := range feedback.CategorizeComments(fb.Comments) {
			s.CommentsReceived++
			s.Categories[cc.Category]++
			categoryTotals[cc.Category]++
			totalComments++
		}
	}

	editors := make([]EditorStats, 0, len(stats))
	for _, s := range stats {
		editors = append(editors, *s)
	}
	// Ordem estável para os gráficos não trocarem as cores a cada refresh
	sort.Slice(editors, func(i, j int) bool { return editors[i].Editor < editors[j].Editor })

	return Dashboard{
		GeneratedAt:    now,
		Editors:        editors,
		CategoryTotals: categoryTotals,
		TotalComments:  totalComments,
		TotalTasks:     len(tasks),
	}
}

func stripScheme(url string) string {
	if idx := strings.Index(url, "://"); idx >= 0 {
		return url[idx+3:]
	}
	return url
}
