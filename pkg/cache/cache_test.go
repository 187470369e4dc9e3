package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New[int]()
	c.Set("a", 42, 0)

	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Fatalf("Get(a) = %d, %v; want 42, true", got, ok)
	}
	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) should miss")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string]()
	c.Set("k", "v", time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len after expired Get = %d, want 0", c.Len())
	}
}

func TestDelete(t *testing.T) {
	c := New[string]()
	c.Set("k", "v", 0)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("deleted entry should miss")
	}
}

func TestOverwrite(t *testing.T) {
	c := New[int]()
	c.Set("k", 1, 0)
	c.Set("k", 2, 0)

	got, _ := c.Get("k")
	if got != 2 {
		t.Errorf("Get = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
