package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vncsrmro/audiovisual-sub001/internal/dto"
)

// clickupWebhook é o envelope que o ClickUp manda no taskStatusUpdated.
// Só olhamos os campos que o event log precisa.
type clickupWebhook struct {
	Event        string `json:"event"`
	TaskID       string `json:"task_id"`
	HistoryItems []struct {
		Date   string `json:"date"` // epoch em milissegundos, como string
		Before *struct {
			Status string `json:"status"`
		} `json:"before"`
		After *struct {
			Status string `json:"status"`
		} `json:"after"`
		User *struct {
			Username string `json:"username"`
		} `json:"user"`
	} `json:"history_items"`
}

// handleClickUpWebhook converte o push do ClickUp em StatusEvent e publica
// no JetStream. A escrita no Postgres acontece no consumidor (eventlog),
// então o webhook responde rápido mesmo com o banco fora.
func (s *Server) handleClickUpWebhook(c *gin.Context) {
	var payload clickupWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido"})
		return
	}

	if payload.Event != "taskStatusUpdated" || payload.TaskID == "" {
		// Outros eventos assinados no webhook são ignorados de propósito
		c.JSON(http.StatusOK, gin.H{"ignored": payload.Event})
		return
	}

	published := 0
	for _, h := range payload.HistoryItems {
		// O ClickUp re-entrega webhooks sem resposta 200 rápida; o par
		// (task, date) identifica a transição para o filtro de duplicata
		dedupKey := payload.TaskID + ":" + h.Date
		if s.dd != nil {
			if seen, err := s.dd.CheckIfProcessed(c.Request.Context(), "webhook", dedupKey); err == nil && seen {
				continue
			}
		}

		ev := dto.StatusEvent{
			ID:         uuid.New().String(),
			TaskID:     payload.TaskID,
			OccurredAt: parseWebhookDate(h.Date),
		}
		if h.Before != nil {
			ev.FromStatus = h.Before.Status
		}
		if h.After != nil {
			ev.ToStatus = h.After.Status
		}
		if h.User != nil {
			ev.Editor = h.User.Username
		}

		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if err := s.pub.Publish(dto.SubjectStatusEvents, data); err != nil {
			log.Printf("[Webhook] ❌ erro publicando evento da task %s: %v", payload.TaskID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "falha ao enfileirar evento"})
			return
		}
		published++

		// Só marca como visto DEPOIS do publish com sucesso
		if s.dd != nil {
			if err := s.dd.MarkAsSeen(c.Request.Context(), "webhook", dedupKey); err != nil {
				log.Printf("[Webhook] ⚠️  erro redis MarkAsSeen %s: %v", dedupKey, err)
			}
		}
	}

	log.Printf("[Webhook] 📨 task %s: %d evento(s) de status publicados", payload.TaskID, published)
	c.JSON(http.StatusOK, gin.H{"published": published})
}

// parseWebhookDate converte o epoch-millis string do ClickUp; payload sem
// data (ou com lixo) ganha o relógio de chegada
func parseWebhookDate(raw string) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}
