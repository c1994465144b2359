package collector

import (
	"errors"
	"log"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/parser"
	"github.com/HaoYuet/HeadlineHub/internal/processor"
)

// SourceResolver 负责单个源的镜像级兜底：按声明顺序走候选地址，
// 第一个解析出非空条目的地址胜出。每轮每个地址只试一次。
type SourceResolver struct {
	fetcher *Fetcher

	// now 可注入，方便测试固定时间
	now func() time.Time
}

func NewSourceResolver(f *Fetcher) *SourceResolver {
	return &SourceResolver{
		fetcher: f,
		now:     time.Now,
	}
}

// Resolve 抓取并归一化一个源。传输和解析错误都会被吞掉，
// 只有全部候选地址失败时才产出失败态结果，绝不向上抛错。
func (r *SourceResolver) Resolve(cfg SourceConfig) processor.SourceResult {
	var last error
	for _, endpoint := range cfg.Endpoints {
		body, err := r.fetcher.FetchWithFallback(endpoint)
		if err != nil {
			log.Printf("resolve %s: endpoint %s failed: %v", cfg.ID, endpoint, err)
			last = err
			continue
		}

		items, err := parser.Parse(body, r.now())
		if err != nil {
			log.Printf("resolve %s: endpoint %s unusable: %v", cfg.ID, endpoint, err)
			last = err
			continue
		}

		return processor.Success(items, r.now())
	}

	if last == nil {
		// 注册表保证 Endpoints 非空，这里只是兜底
		last = errors.New("no endpoints configured")
	}
	return processor.Failure(last, r.now())
}
