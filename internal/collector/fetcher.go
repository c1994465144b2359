package collector

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	maxResponseBytes = 2 << 20 // 2MB

	userAgent = "HeadlineHubBot/1.0"

	// 订阅源返回的都是 XML，但部分站点会校验 Accept
	acceptHeader = "application/rss+xml, application/xml, text/xml, */*"
)

var (
	// ErrTimeout 单次请求在限定时间内没有拿到响应
	ErrTimeout = errors.New("request timed out")
	// ErrNetwork 传输层失败（连接拒绝、DNS 失败等）
	ErrNetwork = errors.New("network error")
)

// HTTPError 非成功状态码
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// ExhaustedError 所有访问策略都失败，保留最后一个底层错误便于排查
type ExhaustedError struct {
	Last error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all access strategies failed, last error: %v", e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Strategy 一种访问策略：把原始地址改写成实际请求地址。
// direct 原样使用，中转策略把目标地址编码后拼到代理前缀之后。
type Strategy struct {
	Name string
	Wrap func(rawURL string) string
}

// DefaultStrategies 按声明顺序构造策略链：先直连，再依次走各个中转前缀
func DefaultStrategies(proxyPrefixes []string) []Strategy {
	strategies := make([]Strategy, 0, len(proxyPrefixes)+1)
	strategies = append(strategies, Strategy{
		Name: "direct",
		Wrap: func(u string) string { return u },
	})
	for i, prefix := range proxyPrefixes {
		prefix := prefix
		strategies = append(strategies, Strategy{
			Name: fmt.Sprintf("relay-%d", i+1),
			Wrap: func(u string) string { return prefix + url.QueryEscape(u) },
		})
	}
	return strategies
}

// Fetcher 负责单次抓取与策略级兜底，不感知镜像列表
type Fetcher struct {
	client     *http.Client
	strategies []Strategy
}

func NewFetcher(timeout time.Duration, strategies []Strategy) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		strategies: strategies,
	}
}

// fetchOnce 对目标地址发起一次 GET。超时由 client 统一控制，
// 连接与计时器资源随响应体关闭一并释放。
func (f *Fetcher) fetchOnce(target string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return body, nil
}

// FetchWithFallback 按声明顺序逐个尝试访问策略，拿到第一个成功响应即返回。
// 串行而非并发，避免给中转节点造成重复负载。
func (f *Fetcher) FetchWithFallback(rawURL string) ([]byte, error) {
	var last error
	for _, st := range f.strategies {
		body, err := f.fetchOnce(st.Wrap(rawURL))
		if err == nil {
			return body, nil
		}
		log.Printf("fetch %s via %s failed: %v", rawURL, st.Name, err)
		last = err
	}
	return nil, &ExhaustedError{Last: last}
}
