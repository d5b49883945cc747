package extractor

import (
	"reflect"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"f.io/abc123", "https://f.io/abc123"},
		{"app.frame.io/reviews/xyz", "https://app.frame.io/reviews/xyz"},
		{"https://f.io/abc123", "https://f.io/abc123"},
		{"http://f.io/abc123", "http://f.io/abc123"},
	}
	for _, tc := range cases {
		if got := normalizeURL(tc.in); got != tc.want {
			t.Errorf("normalizeURL(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestAssetNameFromTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Video_Final_v3.mp4 - Frame.io", "Video_Final_v3.mp4"},
		{"Corte A - Cliente X - Frame.io", "Corte A"},
		{"SemSeparador", "SemSeparador"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := assetNameFromTitle(tc.in); got != tc.want {
			t.Errorf("assetNameFromTitle(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestVisibleLines(t *testing.T) {
	text := "  Alice  \n\n#1\n\t00:01:23\nFix the audio\n   \nReply\n"
	want := []string{"Alice", "#1", "00:01:23", "Fix the audio", "Reply"}

	if got := visibleLines(text); !reflect.DeepEqual(got, want) {
		t.Errorf("visibleLines = %v, esperava %v", got, want)
	}
}

func TestExtractAllEmptyInput(t *testing.T) {
	// Lote vazio tem que retornar imediatamente SEM lançar browser —
	// se tentasse lançar, este teste falharia num ambiente sem Chrome
	e := New(true, 0, 0)

	got, err := e.ExtractAll(nil)
	if err != nil {
		t.Fatalf("ExtractAll(nil) retornou erro: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Esperava saída vazia, veio %d resultados", len(got))
	}

	got, err = e.ExtractAll([]string{})
	if err != nil || len(got) != 0 {
		t.Errorf("ExtractAll([]) deveria ser vazio e sem erro, veio (%v, %v)", got, err)
	}
}

func TestExtractAllChunkedEmptyInput(t *testing.T) {
	e := New(true, 0, 0)
	if got := e.ExtractAllChunked(nil, 3); len(got) != 0 {
		t.Errorf("Chunked com entrada vazia deveria ser vazio, veio %d", len(got))
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(true, 0, 0)
	if e.Timeout != defaultTimeout {
		t.Errorf("Timeout default = %v, esperava %v", e.Timeout, defaultTimeout)
	}
	if e.SettleDelay != defaultSettleDelay {
		t.Errorf("SettleDelay default = %v, esperava %v", e.SettleDelay, defaultSettleDelay)
	}
	if e.LinkDelay != defaultLinkDelay {
		t.Errorf("LinkDelay default = %v, esperava %v", e.LinkDelay, defaultLinkDelay)
	}
}
