package search

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"github.com/vncsrmro/audiovisual-sub001/internal/feedback"
)

// CommentDoc define a estrutura do documento no Meilisearch
type CommentDoc struct {
	ID        string `json:"id"`
	Asset     string `json:"asset"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Timecode  string `json:"timecode"`
	SourceURL string `json:"source_url"`
	Editor    string `json:"editor,omitempty"`
}

// Indexer é a struct que guarda a conexão aberta
type Indexer struct {
	client    meilisearch.ServiceManager
	indexName string
}

// NewIndexer cria a conexão e garante que o índice existe
func NewIndexer(host, apiKey, indexName string) *Indexer {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))

	_, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        indexName,
		PrimaryKey: "id",
	})
	if err != nil {
		log.Printf("Aviso Meilisearch: %v", err)
	}

	client.Index(indexName).UpdateSearchableAttributes(&[]string{
		"text",
		"author",
		"asset",
		"category",
	})

	filterableAttrs := []interface{}{"category", "editor", "asset"}
	client.Index(indexName).UpdateFilterableAttributes(&filterableAttrs)

	fmt.Println("Conectado ao Meilisearch!")

	return &Indexer{
		client:    client,
		indexName: indexName,
	}
}

// IndexFeedback indexa os comentários categorizados de um Feedback extraído.
// O ID determinístico (url + sequence) garante Upsert em re-extrações em vez
// de duplicar documento a cada refresh do dashboard.
func (i *Indexer) IndexFeedback(fb feedback.Feedback, editor string) error {
	if fb.ErrorMessage != "" || len(fb.Comments) == 0 {
		return nil
	}

	docs := make([]CommentDoc, 0, len(fb.Comments))
	for _, cc := range feedback.CategorizeComments(fb.Comments) {
		docs = append(docs, CommentDoc{
			ID:        DocID(fb.SourceURL, cc.SequenceNumber),
			Asset:     fb.AssetName,
			Author:    cc.Author,
			Text:      cc.Text,
			Category:  string(cc.Category),
			Timecode:  cc.TimestampLabel,
			SourceURL: fb.SourceURL,
			Editor:    editor,
		})
	}

	pk := "id"
	task, err := i.client.Index(i.indexName).UpdateDocuments(docs, &meilisearch.DocumentOptions{PrimaryKey: &pk})
	if err != nil {
		return fmt.Errorf("erro ao indexar comentários: %w", err)
	}

	fmt.Printf("Enviado para Meilisearch (Task UID: %d): %d comentários de %s\n", task.TaskUID, len(docs), fb.AssetName)
	return nil
}

// DocID deriva um id estável do par (url, sequence). O sequence do Frame.io
// não é único entre assets, então a URL entra no hash.
func DocID(sourceURL string, sequence int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s#%d", sourceURL, sequence)))
	return hex.EncodeToString(sum[:])
}
