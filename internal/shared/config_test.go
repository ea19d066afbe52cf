package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "STORE_BACKEND", "SESSION_TTL", "IDENTITY_BASE_URL", "CACHE_TTL_SECONDS", "REDIS_DB"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.StoreBackend != "embedded" {
		t.Fatalf("backend=%q", c.StoreBackend)
	}
	if c.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl=%v", c.SessionTTL)
	}
	if c.IdentityBase != "https://dummyjson.com" {
		t.Fatalf("identity base=%q", c.IdentityBase)
	}
	if c.CacheTTL != 900*time.Second {
		t.Fatalf("cache ttl=%v", c.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("IDENTITY_BASE_URL", "http://idp.local/")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDENTITY_TIMEOUT", "soon")

	c := Load()
	if c.StoreBackend != "mysql" {
		t.Fatalf("backend=%q", c.StoreBackend)
	}
	if c.SessionTTL != 90*time.Minute {
		t.Fatalf("session ttl=%v", c.SessionTTL)
	}
	if c.IdentityBase != "http://idp.local" {
		t.Fatalf("identity base=%q", c.IdentityBase)
	}
	if c.RedisDB != 3 {
		t.Fatalf("redis db=%d", c.RedisDB)
	}
	if c.IdentityTimeout != 10*time.Second {
		t.Fatalf("bad duration should fall back, got %v", c.IdentityTimeout)
	}
}

func TestLoad_UnknownBackendFallsBack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "etcd")
	if c := Load(); c.StoreBackend != "embedded" {
		t.Fatalf("backend=%q", c.StoreBackend)
	}
}
