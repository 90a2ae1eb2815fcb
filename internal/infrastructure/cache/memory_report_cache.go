package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
)

var _ ports.ReportCache = (*MemoryReportCache)(nil)

// MemoryReportCache caché en proceso para cuando no hay Redis configurado.
// Guarda JSON, igual que Redis, para que un acierto devuelva exactamente lo mismo.
// Las entradas vencidas se descartan al leerlas y al superar maxEntries.
type MemoryReportCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryReportCache crea la caché; maxEntries <= 0 usa 1024.
func NewMemoryReportCache(maxEntries int) *MemoryReportCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryReportCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get decodifica la entrada vigente en dst.
func (c *MemoryReportCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, fmt.Errorf("cache.Get %s: decodificar: %w", key, err)
	}
	return true, nil
}

// Set guarda value por ttl.
func (c *MemoryReportCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Set %s: codificar: %w", key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = memoryEntry{data: data, expiresAt: now.Add(ttl)}
	return nil
}

// Len cantidad de entradas (vigentes o no).
func (c *MemoryReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked borra las vencidas; si no alcanza, la que vence primero.
func (c *MemoryReportCache) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
