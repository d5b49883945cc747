package feedback

import "github.com/vncsrmro/audiovisual-sub001/internal/classify"

// Comment é um comentário reconstruído a partir do texto visível da página de review.
// Nunca é persistido: é recalculado a cada extração.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	// TimestampLabel é o timecode da mídia (HH:MM:SS[:FF]), não é hora de relógio.
	TimestampLabel string `json:"timestamp_label"`
	// SequenceNumber é o índice do próprio Frame.io por asset. Tratamos como
	// identificador opaco: não assumimos unicidade global nem ordenação.
	SequenceNumber int `json:"sequence_number"`
}

// Feedback agrega os comentários de um review link em uma tentativa de extração.
// ErrorMessage preenchido significa que a extração daquele link falhou e Comments
// está vazio; zero comentários SEM erro também é um resultado válido.
type Feedback struct {
	SourceURL    string    `json:"source_url"`
	AssetName    string    `json:"asset_name"`
	Comments     []Comment `json:"comments"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// CategorizedComment é um Comment com a categoria atribuída pelo classificador.
// Derivado, nunca armazenado.
type CategorizedComment struct {
	Comment
	Category classify.Category `json:"category"`
}

// CategorizeComments aplica o classificador a cada comentário extraído.
// A categorização acontece nesta camada consumidora, fora da extração.
func CategorizeComments(comments []Comment) []CategorizedComment {
	out := make([]CategorizedComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, CategorizedComment{
			Comment:  c,
			Category: classify.Categorize(c.Text),
		})
	}
	return out
}
