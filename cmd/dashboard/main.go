package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/vncsrmro/audiovisual-sub001/internal/clickup"
	"github.com/vncsrmro/audiovisual-sub001/internal/dto"
	"github.com/vncsrmro/audiovisual-sub001/internal/extractor"
	"github.com/vncsrmro/audiovisual-sub001/internal/report"
	"github.com/vncsrmro/audiovisual-sub001/internal/search"
	"github.com/vncsrmro/audiovisual-sub001/internal/server"
	"github.com/vncsrmro/audiovisual-sub001/pkg/cache"
	"github.com/vncsrmro/audiovisual-sub001/pkg/config"
	"github.com/vncsrmro/audiovisual-sub001/pkg/dedup"
	"github.com/vncsrmro/audiovisual-sub001/pkg/metrics"
)

// snapshotTTL segura o resultado da coleta: cada coleta fria abre o browser
// e varre todos os review links, então não dá pra refazer a cada request
const snapshotTTL = 10 * time.Minute

type natsPublisher struct {
	js nats.JetStreamContext
}

func (p *natsPublisher) Publish(subject string, data []byte) error {
	_, err := p.js.Publish(subject, data)
	return err
}

func main() {
	cfg := config.LoadConfig()

	fmt.Println("Audiovisual Dashboard iniciando...")

	// --- Redis (cache das respostas do ClickUp) ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️  Redis não responde em %s (%v). Seguindo sem cache de API nem métricas.", cfg.Redis.Address, err)
		rdb = nil
	}

	var dd *dedup.Deduplicator
	if rdb != nil {
		dd = dedup.NewDeduplicator(rdb, 24)

		go metrics.StartMetricsServer(cfg.Server.MetricsPort, rdb, []metrics.MetricDef{
			{RedisKey: "av:metrics:extract_ok", PromName: "av_extractions_ok_total", Help: "Review links extraídos com sucesso", Type: "counter"},
			{RedisKey: "av:metrics:extract_fail", PromName: "av_extractions_fail_total", Help: "Review links que falharam na extração", Type: "counter"},
			{RedisKey: "av:metrics:snapshots", PromName: "av_snapshots_built_total", Help: "Coletas completas do dashboard", Type: "counter"},
		})
	}

	// --- NATS ---
	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		log.Fatal("Erro NATS:", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		log.Fatal("Erro JetStream:", err)
	}

	// Garante que o stream EVENTS exista para o webhook publicar
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     dto.StreamEvents,
		Subjects: []string{dto.SubjectStatusEvents},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		log.Printf("Stream %s: %v (ok se já existe)", dto.StreamEvents, err)
	}

	// --- Coleta: ClickUp + Frame.io ---
	cuClient := clickup.NewClient(cfg.ClickUp.BaseURL, cfg.ClickUp.Token, rdb)
	ext := extractor.New(
		cfg.Browser.Headless,
		time.Duration(cfg.Browser.TimeoutMs)*time.Millisecond,
		time.Duration(cfg.Browser.SettleSeconds)*time.Second,
	)

	var indexer *search.Indexer
	if cfg.Meilisearch.Host != "" {
		indexer = search.NewIndexer(cfg.Meilisearch.Host, cfg.Meilisearch.Key, cfg.Meilisearch.Index)
	}

	snapCache := cache.New[server.Snapshot](snapshotTTL, nil)

	provider := func(ctx context.Context) (server.Snapshot, error) {
		if snap, ok := snapCache.Get(); ok {
			return snap, nil
		}

		tasks, err := cuClient.ListTasks(ctx, cfg.ClickUp.ListID)
		if err != nil {
			return server.Snapshot{}, fmt.Errorf("erro buscando tasks: %w", err)
		}

		links := clickup.ReviewLinks(tasks)
		log.Printf("[Dashboard] 🔎 %d review links para extrair", len(links))

		fbs, err := ext.ExtractAll(links)
		if err != nil {
			return server.Snapshot{}, fmt.Errorf("erro na extração: %w", err)
		}

		var okCount, failCount int64
		for _, fb := range fbs {
			if fb.ErrorMessage != "" {
				failCount++
			} else {
				okCount++
			}
		}
		metrics.Incr(ctx, rdb, "av:metrics:extract_ok", okCount)
		metrics.Incr(ctx, rdb, "av:metrics:extract_fail", failCount)
		metrics.Incr(ctx, rdb, "av:metrics:snapshots", 1)

		// Editor dono de cada link, indexado também pela forma normalizada
		editorByLink := make(map[string]string)
		for _, t := range tasks {
			if l := t.ReviewLink(); l != "" {
				editorByLink[l] = t.Editor()
				editorByLink["https://"+l] = t.Editor()
			}
		}

		if indexer != nil {
			for _, fb := range fbs {
				if err := indexer.IndexFeedback(fb, editorByLink[fb.SourceURL]); err != nil {
					log.Printf("Falha na indexação de %s: %v", fb.SourceURL, err)
				}
			}
		}

		snap := server.Snapshot{
			Dashboard: report.Build(tasks, fbs, time.Now()),
			Feedbacks: fbs,
		}
		snapCache.Set(snap)
		return snap, nil
	}

	srv := server.New(provider, &natsPublisher{js: js}, dd)

	log.Printf("Dashboard rodando em %s", cfg.Server.Port)
	if err := srv.Router().Run(cfg.Server.Port); err != nil {
		log.Fatal("Erro no servidor HTTP:", err)
	}
}
