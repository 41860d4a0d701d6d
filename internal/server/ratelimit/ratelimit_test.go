package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-studio/internal/config"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/templates", "GET")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("expected limit 10, got %d", info.Limit)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/templates", "GET")
	if allowed {
		t.Error("11th request should be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("denied request should carry a retry delay")
	}
	if info.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", info.Remaining)
	}
	if !info.ResetTime.After(time.Now()) {
		t.Error("reset time should be in the future")
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	if ok, _ := limiter.Allow("a", "/x", "GET"); !ok {
		t.Fatal("first request from a should pass")
	}
	if ok, _ := limiter.Allow("b", "/x", "GET"); !ok {
		t.Fatal("first request from b should pass")
	}
	if ok, _ := limiter.Allow("a", "/x", "GET"); ok {
		t.Fatal("second request from a should be limited")
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow("10.0.0.1", "/x", "GET"); !ok {
			t.Fatal("whitelisted client should never be limited")
		}
	}
	if ok, _ := limiter.Allow("10.0.0.2", "/x", "GET"); ok {
		t.Fatal("blacklisted client should always be limited")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("c", "/x", "GET"); !ok {
			t.Fatal("disabled limiter should allow everything")
		}
	}
	if limiter.Size() != 0 {
		t.Error("disabled limiter should not track buckets")
	}
}

func TestLimiter_WildcardEndpointSharesBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions/*/chat", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	limiter.Allow("c", "/sessions/one/chat", "POST")
	limiter.Allow("c", "/sessions/two/chat", "POST")
	if ok, _ := limiter.Allow("c", "/sessions/three/chat", "POST"); ok {
		t.Fatal("chat limit applies across sessions")
	}
	if ok, _ := limiter.Allow("c", "/sessions/one", "GET"); !ok {
		t.Fatal("other session routes use the default limit")
	}
}

func TestLimiter_UnlimitedHealth(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if ok, _ := limiter.Allow("c", "/health", "GET"); !ok {
			t.Fatal("health checks are unlimited")
		}
		if ok, _ := limiter.Allow("c", "/metrics", "GET"); !ok {
			t.Fatal("metrics are unlimited")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected exactly 50 allowed, got %d", allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/x", "GET")
	}
	if limiter.Size() != 3 {
		t.Fatalf("expected 3 buckets, got %d", limiter.Size())
	}

	limiter.evictIdle(time.Now().Add(-time.Minute))
	if limiter.Size() != 3 {
		t.Error("recently used buckets must survive")
	}
	limiter.evictIdle(time.Now().Add(time.Minute))
	if limiter.Size() != 0 {
		t.Error("idle buckets should be evicted")
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()
	tests := []struct {
		path, method string
		want         string
	}{
		{"/api/suggestions", "POST", "/api/suggestions"},
		{"/sessions/abc/chat", "POST", "/sessions/*/chat"},
		{"/sessions/abc/pdf", "GET", "/sessions/*/pdf"},
		{"/sessions", "POST", "/sessions"},
		{"/applications/123", "DELETE", "/applications/"},
		{"/sessions/abc", "GET", ""},
		{"/api/suggestions", "GET", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected default limit, matched %s", got.Path)
				}
				return
			}
			if got == nil || got.Path != tt.want {
				t.Errorf("expected %s, got %+v", tt.want, got)
			}
		})
	}
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RateLimitConfig{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Second,
		Whitelist:     "1.1.1.1",
	})
	if !cfg.Enabled || cfg.DefaultLimit != 5 || !cfg.Whitelist["1.1.1.1"] {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.EndpointConfigs) == 0 {
		t.Error("endpoint limits should be installed")
	}
	if FromSettings(config.RateLimitConfig{}).Enabled {
		t.Error("disabled settings give a disabled limiter")
	}
}
