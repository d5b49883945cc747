package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	cacheTTL = 10 * time.Minute
	// ClickUp limita o plano free a 100 req/min; ficamos folgados abaixo disso
	requestInterval = 700 * time.Millisecond
)

// Client consulta a API REST do ClickUp com paginação, rate limit e um
// cache de resposta no Redis para não estourar a cota a cada refresh do
// dashboard.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	clientRedis *redis.Client
	limiter     *rate.Limiter
}

func NewClient(baseURL, token string, rdb *redis.Client) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		token:       token,
		clientRedis: rdb,
		limiter:     rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// ListTasks busca todas as tasks da lista, página por página, até a API
// sinalizar last_page. Dentro do TTL, serve a cópia do Redis sem tocar na API.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]Task, error) {
	cacheKey := fmt.Sprintf("av:clickup:tasks:%s", listID)

	if c.clientRedis != nil {
		val, err := c.clientRedis.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []Task
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				fmt.Printf("[CACHE] Tasks da lista %s encontradas no Redis\n", listID)
				return cached, nil
			}
		}
	}

	var all []Task
	for page := 0; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrompido: %w", err)
		}

		tasks, lastPage, err := c.fetchPage(ctx, listID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)

		if lastPage || len(tasks) == 0 {
			break
		}
	}

	log.Printf("[ClickUp] 📋 %d tasks carregadas da lista %s", len(all), listID)

	if c.clientRedis != nil {
		if jsonData, err := json.Marshal(all); err == nil {
			c.clientRedis.Set(ctx, cacheKey, jsonData, cacheTTL)
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, listID string, page int) ([]Task, bool, error) {
	url := fmt.Sprintf("%s/list/%s/task?page=%d&include_closed=true", c.baseURL, listID, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("erro montando request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("erro consultando clickup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("clickup respondeu %d: %s", resp.StatusCode, string(body))
	}

	var pg tasksPage
	if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
		return nil, false, fmt.Errorf("erro decodificando resposta: %w", err)
	}

	return pg.Tasks, pg.LastPage, nil
}

// ReviewLinks junta os review links não-vazios das tasks, na ordem das tasks
func ReviewLinks(tasks []Task) []string {
	var links []string
	for _, t := range tasks {
		if link := t.ReviewLink(); link != "" {
			links = append(links, link)
		}
	}
	return links
}
