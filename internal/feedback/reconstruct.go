package feedback

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Quantas linhas antes do marcador #N procuramos pelo autor
	authorLookback = 4
	unknownAuthor  = "Unknown"
)

// Strings de interface do Frame.io que nunca são nome de autor
var uiChrome = map[string]bool{
	"Reply":        true,
	"Oldest":       true,
	"Newest":       true,
	"Completed":    true,
	"Commenter":    true,
	"All comments": true,
}

// Reconstructor reconstrói comentários estruturados a partir das linhas de
// texto visível de uma página de review renderizada. É uma heurística presa
// à ordem de renderização atual do Frame.io, não um parser de DOM.
type Reconstructor struct {
	marker   *regexp.Regexp
	timecode *regexp.Regexp
	timeAgo  *regexp.Regexp
}

func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		// Linha exatamente "#12" abre um candidato a comentário
		marker: regexp.MustCompile(`^#(\d+)$`),
		// Timecode no início da linha: HH:MM:SS com frames opcionais (:FF)
		timecode: regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}(?::\d{2})?)`),
		// "3h", "12m", "2d" — idade do comentário, nunca autor
		timeAgo: regexp.MustCompile(`^\d+[hmd]$`),
	}
}

// Reconstruct faz uma única passada para frente sobre as linhas (já aparadas
// e não-vazias, em ordem de documento) e devolve os comentários na ordem em
// que os marcadores aparecem — que não é necessariamente a ordem cronológica
// nem a ordem numérica dos #N.
func (r *Reconstructor) Reconstruct(lines []string) []Comment {
	var comments []Comment

	for i := 0; i < len(lines); i++ {
		m := r.marker.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		// O marcador só vale se a PRÓXIMA linha começar com timecode.
		// Sem timecode, nenhum comentário sai e a varredura segue da
		// linha seguinte normalmente (sem pular índices).
		if i+1 >= len(lines) {
			continue
		}
		label := r.timecode.FindString(lines[i+1])
		if label == "" {
			continue
		}

		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		body := r.collectBody(lines, i+2)
		if body == "" || body == "Reply" {
			continue
		}

		comments = append(comments, Comment{
			Author:         r.findAuthor(lines, i),
			Text:           body,
			TimestampLabel: label,
			SequenceNumber: seq,
		})
	}

	return comments
}

// findAuthor procura o autor nas linhas ANTES do marcador, da mais próxima
// para a mais distante, pulando chrome de UI, idades tipo "3h" e linhas fora
// da janela de tamanho (2..50 chars). Sem candidato, cai no placeholder.
func (r *Reconstructor) findAuthor(lines []string, markerIdx int) string {
	for back := 1; back <= authorLookback; back++ {
		j := markerIdx - back
		if j < 0 {
			break
		}
		cand := lines[j]
		if uiChrome[cand] {
			continue
		}
		if r.timeAgo.MatchString(cand) {
			continue
		}
		if len(cand) <= 1 || len(cand) > 50 {
			continue
		}
		return cand
	}
	return unknownAuthor
}

// collectBody acumula o corpo a partir da linha logo após o timecode até
// encontrar "Reply" ou outro marcador #N — mesmo que esse marcador depois
// não abra um comentário válido, ele ainda trunca o corpo aqui.
func (r *Reconstructor) collectBody(lines []string, start int) string {
	var parts []string
	for j := start; j < len(lines); j++ {
		if lines[j] == "Reply" || r.marker.MatchString(lines[j]) {
			break
		}
		// Linhas que parecem timecode são artefato da UI, não corpo
		if r.timecode.MatchString(lines[j]) {
			continue
		}
		parts = append(parts, lines[j])
	}
	return strings.Join(parts, " ")
}

var defaultReconstructor = NewReconstructor()

// Reconstruct aplica o reconstrutor padrão compartilhado.
func Reconstruct(lines []string) []Comment {
	return defaultReconstructor.Reconstruct(lines)
}
