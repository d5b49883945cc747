package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	// Relógio fake para não depender de time.Sleep no teste
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	c := New[string](10*time.Minute, clock)

	if _, ok := c.Get(); ok {
		t.Errorf("Cache vazio não deveria retornar valor")
	}

	c.Set("dashboard-payload")

	v, ok := c.Get()
	if !ok || v != "dashboard-payload" {
		t.Errorf("Esperava hit com 'dashboard-payload', veio (%q, %v)", v, ok)
	}

	// Avança o relógio para além do TTL
	current = current.Add(11 * time.Minute)
	if _, ok := c.Get(); ok {
		t.Errorf("Valor expirado não deveria ser servido")
	}

	// Set renova o fetchedAt com o relógio atual
	c.Set("fresh")
	if v, ok := c.Get(); !ok || v != "fresh" {
		t.Errorf("Esperava hit após Set pós-expiração, veio (%q, %v)", v, ok)
	}
}

func TestTTLCacheInvalidate(t *testing.T) {
	c := New[int](time.Hour, nil)
	c.Set(42)
	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Errorf("Invalidate não removeu o valor")
	}
}
