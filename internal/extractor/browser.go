package extractor

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// NewBrowser cria uma instância de browser Rod para a extração do Frame.io.
// As flags de GPU/sandbox existem para rodar dentro de containers Linux.
func NewBrowser(headless bool) (*rod.Browser, error) {
	path, _ := launcher.LookPath()

	l := launcher.New().
		Bin(path).
		Leakless(false).
		Set("use-gl", "swiftshader"). // Software rendering para containers
		Set("disable-gpu").
		Set("no-sandbox")

	if headless {
		l = l.Set("headless", "new")
	} else {
		l = l.Headless(false) // Para desenvolvimento/VNC (Permite ver a tela)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("erro ao iniciar browser: %w", err)
	}

	return rod.New().ControlURL(u).MustConnect(), nil
}
