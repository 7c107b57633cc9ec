package clients

import (
	"fmt"
	"log"
	"sync"

	"CustomsRAG/app/configs"
)

type Registry struct {
	mu      sync.RWMutex
	clients []Interface
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make([]Interface, 0),
	}
}

func (r *Registry) Register(client Interface, a Answerer) error {
	if err := client.Subscribe(a); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, client)

	return nil
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, client := range r.clients {
		if err := client.Close(); err != nil {
			log.Printf("⚠️ Error closing client: %v", err)
		}
	}
	r.clients = make([]Interface, 0)
}

func CreateClient(cfg configs.ClientConfig) (Interface, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("client %s is disabled", cfg.Type)
	}

	switch cfg.Type {
	case "discord":
		return NewDiscordClientFromConfig(cfg.Config)
	default:
		return nil, fmt.Errorf("unknown client type: %s", cfg.Type)
	}
}
