package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/vncsrmro/audiovisual-sub001/internal/classify"
	"github.com/vncsrmro/audiovisual-sub001/internal/clickup"
	"github.com/vncsrmro/audiovisual-sub001/internal/feedback"
)

func fixtureTasks() []clickup.Task {
	mk := func(id, name, status, editor, link string) clickup.Task {
		t := clickup.Task{ID: id, Name: name}
		t.Status.Status = status
		if editor != "" {
			t.Assignees = []clickup.Assignee{{ID: 1, Username: editor}}
		}
		if link != "" {
			t.CustomFields = []clickup.CustomField{{Name: "Frame.io Link", Type: "url", Value: link}}
		}
		return t
	}
	return []clickup.Task{
		mk("t1", "Video A", "review", "alice", "f.io/aaa"),
		mk("t2", "Video B", "done", "alice", ""),
		mk("t3", "Video C", "review", "bruno", "f.io/bbb"),
		mk("t4", "Video D", "review", "bruno", "f.io/ccc"),
	}
}

func fixtureFeedbacks() []feedback.Feedback {
	return []feedback.Feedback{
		{
			SourceURL: "https://f.io/aaa",
			AssetName: "Video A",
			Comments: []feedback.Comment{
				{Author: "Cliente", Text: "Fix the audio", TimestampLabel: "00:01:00", SequenceNumber: 1},
				{Author: "Cliente", Text: "the logo is too big", TimestampLabel: "00:02:00", SequenceNumber: 2},
			},
		},
		{
			SourceURL: "https://f.io/bbb",
			AssetName: "Video C",
			Comments: []feedback.Comment{
				{Author: "Cliente", Text: "legenda atrasada", TimestampLabel: "00:00:30", SequenceNumber: 1},
			},
		},
		{
			SourceURL:    "https://f.io/ccc",
			ErrorMessage: "timeout aguardando load",
		},
	}
}

func TestBuildAggregatesPerEditor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dash := Build(fixtureTasks(), fixtureFeedbacks(), now)

	if dash.TotalTasks != 4 {
		t.Errorf("TotalTasks = %d, esperava 4", dash.TotalTasks)
	}
	if dash.TotalComments != 3 {
		t.Errorf("TotalComments = %d, esperava 3", dash.TotalComments)
	}
	if len(dash.Editors) != 2 {
		t.Fatalf("Esperava 2 editores, veio %d", len(dash.Editors))
	}

	// Ordenação alfabética estável
	alice, bruno := dash.Editors[0], dash.Editors[1]
	if alice.Editor != "alice" || bruno.Editor != "bruno" {
		t.Fatalf("Editores fora de ordem: %q, %q", alice.Editor, bruno.Editor)
	}

	if alice.TasksTotal != 2 || alice.TasksWithReview != 1 {
		t.Errorf("alice: tasks=%d reviews=%d, esperava 2/1", alice.TasksTotal, alice.TasksWithReview)
	}
	if alice.CommentsReceived != 2 {
		t.Errorf("alice: comentários = %d, esperava 2", alice.CommentsReceived)
	}
	if alice.Categories[classify.CategoryAudio] != 1 || alice.Categories[classify.CategoryLogo] != 1 {
		t.Errorf("alice: categorias erradas: %v", alice.Categories)
	}

	// O link que falhou conta como FailedLinks do bruno, sem comentários
	if bruno.FailedLinks != 1 {
		t.Errorf("bruno: failed_links = %d, esperava 1", bruno.FailedLinks)
	}
	if bruno.CommentsReceived != 1 {
		t.Errorf("bruno: comentários = %d, esperava 1", bruno.CommentsReceived)
	}
	if bruno.Categories[classify.CategorySubtitle] != 1 {
		t.Errorf("bruno: esperava 1 comentário de legenda, veio %v", bruno.Categories)
	}

	if dash.CategoryTotals[classify.CategoryAudio] != 1 ||
		dash.CategoryTotals[classify.CategoryLogo] != 1 ||
		dash.CategoryTotals[classify.CategorySubtitle] != 1 {
		t.Errorf("Totais por categoria errados: %v", dash.CategoryTotals)
	}
}

func TestBuildDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Build(fixtureTasks(), fixtureFeedbacks(), now)
	b := Build(fixtureTasks(), fixtureFeedbacks(), now)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Build deve ser determinístico para a mesma entrada")
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	dash := Build(nil, nil, time.Now())
	if dash.TotalTasks != 0 || dash.TotalComments != 0 || len(dash.Editors) != 0 {
		t.Errorf("Entrada vazia deveria dar dashboard vazio, veio %+v", dash)
	}
}
