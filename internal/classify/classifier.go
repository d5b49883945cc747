package classify

import (
	"regexp"
	"strings"
)

// Category é um dos dez rótulos fixos atribuídos ao texto de um comentário.
type Category string

const (
	CategoryAudio    Category = "Audio / Voice"
	CategorySubtitle Category = "Subtitles / Text"
	CategoryCut      Category = "Cut / Transition"
	CategoryFont     Category = "Font / Typography"
	CategoryColor    Category = "Color / Image"
	CategoryTiming   Category = "Timing / Sync"
	CategoryLogo     Category = "Logo / Brand"
	CategoryCTA      Category = "CTA / Price"
	CategoryFootage  Category = "Footage / Video"
	CategoryOther    Category = "Other"
)

type rule struct {
	category Category
	re       *regexp.Regexp
}

// Classifier mapeia texto livre de comentário para exatamente uma categoria.
// A ordem das regras é o desempate: vence a PRIMEIRA categoria cujo padrão
// casar no texto em minúsculas, não a que casar "melhor".
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	// Os padrões podem se sobrepor de propósito; a ordem resolve o conflito.
	patterns := []struct {
		category Category
		expr     string
	}{
		{CategoryAudio, `[áa]udio|\bsom\b|sound|voice|\bvoz\b|locu[çc][ãa]o|volume|m[úu]sica|music|narra[çc][ãa]o|trilha`},
		{CategorySubtitle, `legenda|subtitle|caption|\btypo\b|ortografia|spelling|\btexto\b|\btext\b|wording`},
		{CategoryCut, `\bcorte\b|\bcut\b|transi[çc][ãa]o|transition|\btrim\b|cortar`},
		{CategoryFont, `fonte|\bfont\b|tipografia|typography|typeface|\bbold\b|negrito|it[áa]lico|italic`},
		{CategoryColor, `\bcor\b|\bcolor\b|colour|grading|\bgrade\b|satura[çc][ãa]o|saturation|contraste|contrast|brilho|brightness|\bimagem\b|\bimage\b`},
		{CategoryTiming, `timing|\bsync\b|sincron|dessincron|\bdelay\b|atrasad|adiantad|pacing|ritmo`},
		{CategoryLogo, `\blogo\b|logotipo|\bbrand\b|marca\s+d'?[áa]gua|watermark|\bmarca\b`},
		{CategoryCTA, `\bcta\b|call\s+to\s+action|chamada|pre[çc]o|\bprice\b|desconto|discount|oferta|offer|\bbuy\b|compre`},
		{CategoryFootage, `footage|\bclipe?\b|b-?roll|\bshot\b|\btake\b|v[íi]deo|\bvideo\b|grava[çc][ãa]o`},
	}

	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, rule{
			category: p.category,
			re:       regexp.MustCompile(p.expr),
		})
	}
	return &Classifier{rules: rules}
}

// Categorize é total e determinística: toda string cai em exatamente uma
// categoria, com CategoryOther como fallback garantido.
func (c *Classifier) Categorize(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if r.re.MatchString(lower) {
			return r.category
		}
	}
	return CategoryOther
}

var defaultClassifier = NewClassifier()

// Categorize aplica o classificador padrão compartilhado.
func Categorize(text string) Category {
	return defaultClassifier.Categorize(text)
}

// Categories devolve os dez rótulos na ordem de prioridade (Other por último).
// Usado pelo dashboard para montar as séries dos gráficos sempre na mesma ordem.
func Categories() []Category {
	return []Category{
		CategoryAudio,
		CategorySubtitle,
		CategoryCut,
		CategoryFont,
		CategoryColor,
		CategoryTiming,
		CategoryLogo,
		CategoryCTA,
		CategoryFootage,
		CategoryOther,
	}
}
