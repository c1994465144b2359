package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	const key = "TEST_FETCH_TIMEOUT_MS"

	_ = os.Setenv(key, "not-a-number")
	defer os.Unsetenv(key)
	if got := getEnvInt(key, 8000); got != 8000 {
		t.Fatalf("getEnvInt with garbage = %d, want default 8000", got)
	}

	_ = os.Setenv(key, "-5")
	if got := getEnvInt(key, 8000); got != 8000 {
		t.Fatalf("getEnvInt with negative = %d, want default 8000", got)
	}

	_ = os.Setenv(key, "3000")
	if got := getEnvInt(key, 8000); got != 3000 {
		t.Fatalf("getEnvInt = %d, want 3000", got)
	}
}

func TestLoadReadsTimeoutAndProxies(t *testing.T) {
	_ = os.Setenv("FETCH_TIMEOUT_MS", "2500")
	_ = os.Setenv("PROXY_PREFIXES", "https://relay-a.example/?url=, https://relay-b.example/fetch?u=")
	defer func() {
		_ = os.Unsetenv("FETCH_TIMEOUT_MS")
		_ = os.Unsetenv("PROXY_PREFIXES")
	}()

	cfg := Load()
	if cfg.FetchTimeout != 2500*time.Millisecond {
		t.Fatalf("FetchTimeout = %s, want 2.5s", cfg.FetchTimeout)
	}
	if len(cfg.ProxyPrefixes) != 2 {
		t.Fatalf("ProxyPrefixes = %v, want 2 entries", cfg.ProxyPrefixes)
	}
	if cfg.ProxyPrefixes[1] != "https://relay-b.example/fetch?u=" {
		t.Fatalf("ProxyPrefixes[1] = %q, whitespace not trimmed", cfg.ProxyPrefixes[1])
	}
}

func TestSplitListSkipsEmptyParts(t *testing.T) {
	out := splitList("a,,b, ,c")
	if len(out) != 3 || out[0] != "a" || out[2] != "c" {
		t.Fatalf("splitList = %v, want [a b c]", out)
	}
}
