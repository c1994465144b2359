package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string

	// CronSpec 控制全量采集周期，默认每 5 分钟一轮
	CronSpec string

	// FetchTimeout 单次请求的超时时间
	FetchTimeout time.Duration

	// ProxyPrefixes 中转代理前缀列表（逗号分隔），按声明顺序作为直连失败后的兜底
	ProxyPrefixes []string
}

const (
	defaultFetchTimeoutMs = 8000

	// 默认中转前缀：目标地址会以 URL 编码形式拼接在前缀之后
	defaultProxyPrefixes = "https://api.allorigins.win/raw?url=,https://corsproxy.io/?url="
)

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		CronSpec:      getEnv("CRON_SPEC", "@every 5m"),
		FetchTimeout:  time.Duration(getEnvInt("FETCH_TIMEOUT_MS", defaultFetchTimeoutMs)) * time.Millisecond,
		ProxyPrefixes: splitList(getEnv("PROXY_PREFIXES", defaultProxyPrefixes)),
	}

	log.Printf("config loaded: port=%s cron=%s fetch_timeout=%s proxies=%d",
		cfg.AppPort, cfg.CronSpec, cfg.FetchTimeout, len(cfg.ProxyPrefixes))
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

// splitList 解析逗号分隔的列表，忽略空白项
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
