package config

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config representa a estrutura completa do config.yaml
type Config struct {
	App struct {
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Port        string `yaml:"port"`
		MetricsPort string `yaml:"metrics_port"`
	} `yaml:"server"`

	// Credenciais e lista do ClickUp (fonte das tasks dos editores)
	ClickUp struct {
		Token   string `yaml:"token"`
		ListID  string `yaml:"list_id"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"clickup"`

	// Controle do browser headless usado na extração do Frame.io
	Browser struct {
		Headless      bool `yaml:"headless"`
		TimeoutMs     int  `yaml:"timeout_ms"`
		SettleSeconds int  `yaml:"settle_seconds"`
	} `yaml:"browser"`

	// Infraestrutura Compartilhada
	Nats struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	// Event log de mudanças de status (apenas escrita)
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Meilisearch struct {
		Host  string `yaml:"host"`
		Key   string `yaml:"key"`
		Index string `yaml:"index"`
	} `yaml:"meilisearch"`
}

func LoadConfig() *Config {
	// 1. Tenta pegar via Variável de Ambiente (Docker/Prod)
	configPath := os.Getenv("CONFIG_PATH")

	// 2. Se não tiver, tenta achar "subindo" pastas (Local Dev)
	if configPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			configPath = "config.yaml"
		} else if _, err := os.Stat("config/config.yaml"); err == nil {
			configPath = "config/config.yaml"
		} else if _, err := os.Stat("../../config/config.yaml"); err == nil {
			// Útil quando rodamos 'go run' de dentro de cmd/
			configPath = "../../config/config.yaml"
		}
	}

	// Converte caminho relativo para absoluto para debug
	absPath, _ := filepath.Abs(configPath)
	log.Printf("Carregando config de: %s", absPath)

	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Erro fatal lendo config: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("Erro ao decodificar YAML: %v", err)
	}

	// Defaults para os campos opcionais
	if cfg.Browser.TimeoutMs <= 0 {
		cfg.Browser.TimeoutMs = 30000
	}
	if cfg.Browser.SettleSeconds <= 0 {
		cfg.Browser.SettleSeconds = 5
	}
	if cfg.ClickUp.BaseURL == "" {
		cfg.ClickUp.BaseURL = "https://api.clickup.com/api/v2"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.MetricsPort == "" {
		cfg.Server.MetricsPort = ":9100"
	}

	return &cfg
}
