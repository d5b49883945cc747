package metrics

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// MetricDef define o mapeamento entre uma chave Redis e uma métrica Prometheus.
type MetricDef struct {
	RedisKey string
	PromName string
	Help     string
	Type     string // "counter" ou "gauge"
}

// Incr soma delta no contador guardado no Redis. Erros são só logados:
// métrica perdida nunca pode derrubar a coleta.
func Incr(ctx context.Context, rdb *redis.Client, key string, delta int64) {
	if rdb == nil || delta == 0 {
		return
	}
	if err := rdb.IncrBy(ctx, key, delta).Err(); err != nil {
		log.Printf("metrics: erro incrementando %s: %v", key, err)
	}
}

// StartMetricsServer inicia um servidor HTTP que expõe métricas no formato Prometheus.
func StartMetricsServer(port string, rdb *redis.Client, metricsDefs []MetricDef) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()
		for _, m := range metricsDefs {
			val, err := rdb.Get(ctx, m.RedisKey).Result()
			if err == redis.Nil {
				val = "0"
			} else if err != nil {
				log.Printf("metrics: erro ao ler chave %s: %v", m.RedisKey, err)
				val = "0"
			}
			fmt.Fprintf(w, "# HELP %s %s\n", m.PromName, m.Help)
			fmt.Fprintf(w, "# TYPE %s %s\n", m.PromName, m.Type)
			fmt.Fprintf(w, "%s %s\n\n", m.PromName, val)
		}
	})

	log.Printf("Metrics server ouvindo em %s/metrics", port)
	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatalf("metrics: falha ao iniciar servidor: %v", err)
	}
}
