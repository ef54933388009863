package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryGateway is an in-process Gateway used in tests.
type MemoryGateway struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string]json.RawMessage)}
}

func (g *MemoryGateway) Load(key string) (json.RawMessage, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	raw, ok := g.data[key]
	return raw, ok, nil
}

func (g *MemoryGateway) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = raw
	return nil
}
