package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vncsrmro/audiovisual-sub001/internal/feedback"
	"github.com/vncsrmro/audiovisual-sub001/internal/report"
	"github.com/vncsrmro/audiovisual-sub001/pkg/dedup"
)

// Publisher abstrai o JetStream para os handlers (e para os testes).
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Snapshot é o resultado de um ciclo completo de coleta: tasks do ClickUp
// cruzadas com a extração do Frame.io já agregadas, mais os Feedbacks crus.
type Snapshot struct {
	Dashboard report.Dashboard    `json:"dashboard"`
	Feedbacks []feedback.Feedback `json:"feedbacks"`
}

// SnapshotProvider entrega o snapshot atual (normalmente via cache com TTL,
// porque cada coleta fria dispara o browser headless).
type SnapshotProvider func(ctx context.Context) (Snapshot, error)

type Server struct {
	provider SnapshotProvider
	pub      Publisher
	// dd filtra redelivery de webhook; nil desliga o filtro
	dd *dedup.Deduplicator
}

func New(provider SnapshotProvider, pub Publisher, dd *dedup.Deduplicator) *Server {
	return &Server{provider: provider, pub: pub, dd: dd}
}

// Router monta as rotas do dashboard e do webhook.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.handleDashboardPage)

	api := r.Group("/api")
	{
		api.GET("/metrics", s.handleMetrics)
		api.GET("/feedback", s.handleFeedback)
	}

	r.POST("/webhooks/clickup", s.handleClickUpWebhook)

	return r
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap, err := s.provider(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap.Dashboard)
}

// handleFeedback devolve os Feedbacks crus (com comentários categorizados
// pelo consumidor no front). Links que falharam aparecem junto dos bons,
// com a error_message explicando o zero de comentários.
func (s *Server) handleFeedback(c *gin.Context) {
	snap, err := s.provider(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	asset := c.Query("asset")
	if asset == "" {
		c.JSON(http.StatusOK, snap.Feedbacks)
		return
	}

	var filtered []feedback.Feedback
	for _, fb := range snap.Feedbacks {
		if fb.AssetName == asset {
			filtered = append(filtered, fb)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (s *Server) handleDashboardPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}
