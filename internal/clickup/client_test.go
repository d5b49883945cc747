package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func fakeClickUp(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")

		switch page {
		case "0":
			fmt.Fprint(w, `{"tasks":[
				{"id":"t1","name":"Video A","status":{"status":"review"},
				 "assignees":[{"id":1,"username":"alice"}],
				 "custom_fields":[{"id":"cf1","name":"Frame.io Link","type":"url","value":"f.io/abc"}]},
				{"id":"t2","name":"Video B","status":{"status":"done"},
				 "assignees":[{"id":2,"username":"bruno"}],
				 "custom_fields":[{"id":"cf1","name":"Frame.io Link","type":"url","value":null}]}
			],"last_page":false}`)
		case "1":
			fmt.Fprint(w, `{"tasks":[
				{"id":"t3","name":"Video C","status":{"status":"review"},
				 "assignees":[],
				 "custom_fields":[{"id":"cf2","name":"Link de review","type":"url","value":"https://f.io/xyz"}]}
			],"last_page":true}`)
		default:
			fmt.Fprint(w, `{"tasks":[],"last_page":true}`)
		}
	}))
}

func TestListTasksPaginationAndCache(t *testing.T) {
	var requests atomic.Int32
	srv := fakeClickUp(t, &requests)
	defer srv.Close()

	// MiniRedis pra testar o cache sem Redis real subindo
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Erro ao iniciar miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewClient(srv.URL, "pk_test_token", rdb)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx, "lista-1")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Esperava 3 tasks agregadas das 2 páginas, veio %d", len(tasks))
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("Esperava 2 requests (paginação até last_page), veio %d", got)
	}

	// Segunda chamada dentro do TTL: tem que sair do Redis, sem tocar na API
	again, err := c.ListTasks(ctx, "lista-1")
	if err != nil {
		t.Fatalf("ListTasks (cache): %v", err)
	}
	if len(again) != 3 {
		t.Errorf("Cache devolveu %d tasks, esperava 3", len(again))
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("Cache hit não deveria gerar request novo; total foi %d", got)
	}

	// Confere que o que foi pro Redis é JSON válido de []Task
	raw, err := mr.Get("av:clickup:tasks:lista-1")
	if err != nil {
		t.Fatalf("Chave de cache ausente no Redis: %v", err)
	}
	var cached []Task
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Errorf("Cache não é JSON de []Task: %v", err)
	}
}

func TestListTasksWithoutRedis(t *testing.T) {
	var requests atomic.Int32
	srv := fakeClickUp(t, &requests)
	defer srv.Close()

	// Sem Redis o client tem que funcionar do mesmo jeito, só sem cache
	c := NewClient(srv.URL, "pk_test_token", nil)
	tasks, err := c.ListTasks(context.Background(), "lista-1")
	if err != nil {
		t.Fatalf("ListTasks sem redis: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("Esperava 3 tasks, veio %d", len(tasks))
	}
}

func TestReviewLinkExtraction(t *testing.T) {
	task := Task{
		CustomFields: []CustomField{
			{Name: "Briefing", Type: "text", Value: "qualquer coisa"},
			{Name: "Frame.io Link", Type: "url", Value: "f.io/abc"},
		},
	}
	if got := task.ReviewLink(); got != "f.io/abc" {
		t.Errorf("ReviewLink = %q, esperava f.io/abc", got)
	}

	// Campo url genérico serve de fallback quando não há campo "frame"
	task2 := Task{
		CustomFields: []CustomField{
			{Name: "Review", Type: "url", Value: "https://f.io/xyz"},
		},
	}
	if got := task2.ReviewLink(); got != "https://f.io/xyz" {
		t.Errorf("ReviewLink fallback = %q, esperava https://f.io/xyz", got)
	}

	// Valor null (json) vira nil: não pode quebrar nem retornar lixo
	task3 := Task{
		CustomFields: []CustomField{
			{Name: "Frame.io Link", Type: "url", Value: nil},
		},
	}
	if got := task3.ReviewLink(); got != "" {
		t.Errorf("ReviewLink com value null = %q, esperava vazio", got)
	}
}

func TestEditorFallback(t *testing.T) {
	if got := (Task{}).Editor(); got != "desconhecido" {
		t.Errorf("Task sem assignee deveria dar 'desconhecido', veio %q", got)
	}
}

func TestReviewLinksOrder(t *testing.T) {
	tasks := []Task{
		{ID: "a", CustomFields: []CustomField{{Name: "Frame.io Link", Type: "url", Value: "f.io/1"}}},
		{ID: "b"},
		{ID: "c", CustomFields: []CustomField{{Name: "Frame.io Link", Type: "url", Value: "f.io/2"}}},
	}
	links := ReviewLinks(tasks)
	if len(links) != 2 || links[0] != "f.io/1" || links[1] != "f.io/2" {
		t.Errorf("ReviewLinks deve preservar a ordem das tasks, veio %v", links)
	}
}
