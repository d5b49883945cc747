package extractor

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/vncsrmro/audiovisual-sub001/internal/feedback"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultSettleDelay = 5 * time.Second
	defaultLinkDelay   = 2 * time.Second
	defaultChunkSize   = 3

	// UA fixo de desktop: o Frame.io serve um layout diferente para mobile
	// e as heurísticas de reconstrução dependem do layout desktop
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Extractor abre páginas de review no browser headless, captura o texto
// visível renderizado e delega a reconstrução dos comentários.
type Extractor struct {
	Headless bool
	// Timeout de navegação por link
	Timeout time.Duration
	// SettleDelay é a espera fixa após o load para o client-side rendering
	// terminar de pintar. É um substituto grosseiro para um sinal real de
	// "conteúdo pronto" e a principal fonte de flakiness conhecida.
	SettleDelay time.Duration
	// LinkDelay é a pausa de cortesia entre links consecutivos do lote
	LinkDelay time.Duration
}

func New(headless bool, timeout, settle time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	return &Extractor{
		Headless:    headless,
		Timeout:     timeout,
		SettleDelay: settle,
		LinkDelay:   defaultLinkDelay,
	}
}

// Extract abre um review link e devolve SEMPRE um Feedback: qualquer falha
// de navegação, timeout ou avaliação vira ErrorMessage, nunca estoura para
// o chamador. Se browser for nil, o Extract lança (e fecha) um próprio;
// um browser compartilhado recebido de fora nunca é fechado aqui.
func (e *Extractor) Extract(browser *rod.Browser, rawURL string) feedback.Feedback {
	url := normalizeURL(rawURL)

	if browser == nil {
		own, err := NewBrowser(e.Headless)
		if err != nil {
			return feedback.Feedback{SourceURL: url, ErrorMessage: fmt.Sprintf("erro ao iniciar browser: %v", err)}
		}
		defer own.Close()
		browser = own
	}

	return e.extractPage(browser, url)
}

func (e *Extractor) extractPage(browser *rod.Browser, url string) (fb feedback.Feedback) {
	fb = feedback.Feedback{SourceURL: url}

	// O rod pode entrar em pânico em falhas de protocolo CDP; o contrato
	// aqui é nunca deixar nada passar da fronteira da extração
	defer func() {
		if r := recover(); r != nil {
			fb = feedback.Feedback{SourceURL: url, ErrorMessage: fmt.Sprintf("falha inesperada na extração: %v", r)}
		}
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		fb.ErrorMessage = fmt.Sprintf("erro criando pagina stealth: %v", err)
		return fb
	}
	// Fecha a aba na saída, nunca o browser compartilhado
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		fb.ErrorMessage = fmt.Sprintf("erro configurando viewport: %v", err)
		return fb
	}
	if err := (proto.NetworkSetUserAgentOverride{UserAgent: desktopUserAgent}).Call(page); err != nil {
		fb.ErrorMessage = fmt.Sprintf("erro configurando user-agent: %v", err)
		return fb
	}

	if err := page.Timeout(e.Timeout).Navigate(url); err != nil {
		fb.ErrorMessage = fmt.Sprintf("erro navegando para %s: %v", url, err)
		return fb
	}
	if err := page.Timeout(e.Timeout).WaitLoad(); err != nil {
		fb.ErrorMessage = fmt.Sprintf("timeout aguardando load de %s: %v", url, err)
		return fb
	}

	// Espera fixa para o React do Frame.io terminar de montar a thread
	time.Sleep(e.SettleDelay)

	res, err := page.Eval(`() => ({
		title: document.title,
		text: document.body ? document.body.innerText : ""
	})`)
	if err != nil {
		fb.ErrorMessage = fmt.Sprintf("erro capturando texto da pagina: %v", err)
		return fb
	}

	title := res.Value.Get("title").String()
	text := res.Value.Get("text").String()

	fb.AssetName = assetNameFromTitle(title)
	fb.Comments = feedback.Reconstruct(visibleLines(text))
	return fb
}

// ExtractAll processa os links em ordem estrita de entrada reutilizando UM
// browser para o lote inteiro. Saída sempre 1:1 com a entrada; um link ruim
// vira Feedback com ErrorMessage e não derruba o resto do lote. Só a falha
// de lançar o próprio browser propaga como erro.
func (e *Extractor) ExtractAll(urls []string) ([]feedback.Feedback, error) {
	results := make([]feedback.Feedback, 0, len(urls))
	if len(urls) == 0 {
		// Lote vazio não lança browser nenhum
		return results, nil
	}

	browser, err := NewBrowser(e.Headless)
	if err != nil {
		return nil, fmt.Errorf("erro ao iniciar browser compartilhado: %w", err)
	}
	defer browser.Close()

	for i, u := range urls {
		fb := e.Extract(browser, u)
		if fb.ErrorMessage != "" {
			log.Printf("[Extractor] ❌ %s: %s", u, fb.ErrorMessage)
		} else {
			log.Printf("[Extractor] ✅ %s → %d comentários (%s)", u, len(fb.Comments), fb.AssetName)
		}
		results = append(results, fb)

		// Delay de cortesia entre links (rate-limit, não correção)
		if i < len(urls)-1 {
			time.Sleep(e.LinkDelay)
		}
	}

	return results, nil
}

// ExtractAllChunked é a variante usada pelas telas que preferem throughput:
// processa a worklist em chunks de tamanho fixo, membros do chunk em paralelo
// (cada um com browser próprio), chunks em sequência. Os resultados são
// remontados na ordem original da entrada antes de devolver.
func (e *Extractor) ExtractAllChunked(urls []string, chunkSize int) []feedback.Feedback {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	results := make([]feedback.Feedback, len(urls))
	for start := 0; start < len(urls); start += chunkSize {
		end := min(start+chunkSize, len(urls))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = e.Extract(nil, urls[idx])
			}(i)
		}
		wg.Wait()
	}
	return results
}

// normalizeURL garante o scheme: links colados do ClickUp vêm sem https://
func normalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// assetNameFromTitle pega o nome do asset do título da página
// ("Video_Final_v3.mp4 - Frame.io" → "Video_Final_v3.mp4")
func assetNameFromTitle(title string) string {
	if idx := strings.Index(title, " - "); idx >= 0 {
		return title[:idx]
	}
	return title
}

// visibleLines quebra o innerText em linhas aparadas e não-vazias,
// na ordem do documento — o formato que o reconstrutor espera
func visibleLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}
