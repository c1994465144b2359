package scheduler

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/collector"
	"github.com/HaoYuet/HeadlineHub/internal/processor"
	"github.com/HaoYuet/HeadlineHub/internal/storage"
	"github.com/robfig/cron/v3"
)

// Resolver 抽象单源解析，方便测试时替换成打桩实现
type Resolver interface {
	Resolve(cfg collector.SourceConfig) processor.SourceResult
}

// Scheduler 驱动全量采集：每轮并发解析所有源，等全部落库后本轮才算结束。
// 单个源失败只影响自己，不会让整轮失败。
type Scheduler struct {
	cron     *cron.Cron
	sources  []collector.SourceConfig
	resolver Resolver
	store    *storage.Store

	// seq 单调递增的轮次序号，手动重试与全量轮次共用同一计数器，
	// 保证同一个源的写入有全序，存储层据此丢弃迟到的旧结果
	seq atomic.Uint64
}

func New(spec string, sources []collector.SourceConfig, resolver Resolver, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:     c,
		sources:  sources,
		resolver: resolver,
		store:    store,
	}

	if _, err := c.AddFunc(spec, s.runCycle); err != nil {
		return nil, err
	}
	return s, nil
}

// Start 先在后台跑一轮，再进入周期调度
func (s *Scheduler) Start() {
	go s.runCycle()
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunCycle 对外暴露的手动全量刷新入口，独立于定时器；同步等待本轮完成
func (s *Scheduler) RunCycle() {
	s.runCycle()
}

func (s *Scheduler) runCycle() {
	seq := s.seq.Add(1)
	start := time.Now()
	log.Printf("cycle %d started, sources=%d", seq, len(s.sources))

	var wg sync.WaitGroup
	var okCount, failCount atomic.Int64
	for _, src := range s.sources {
		wg.Add(1)
		go func(cfg collector.SourceConfig) {
			defer wg.Done()
			res := s.resolver.Resolve(cfg)
			if res.Status == processor.StatusSuccess {
				okCount.Add(1)
			} else {
				failCount.Add(1)
			}
			if !s.store.Put(cfg.ID, seq, res) {
				log.Printf("cycle %d: result for %s superseded by a newer cycle", seq, cfg.ID)
			}
		}(src)
	}
	wg.Wait()

	log.Printf("cycle %d done: ok=%d failed=%d duration=%s",
		seq, okCount.Load(), failCount.Load(), time.Since(start))
}

// RetrySource 重新解析单个源，未知 id 返回错误。
// 重试占用一个新的轮次序号，既不会被旧轮次的晚完成覆盖，
// 也不会妨碍并发全量轮次写入其它源。
func (s *Scheduler) RetrySource(id string) error {
	cfg, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("unknown source %q", id)
	}

	seq := s.seq.Add(1)
	log.Printf("retry %s as cycle %d", id, seq)

	res := s.resolver.Resolve(cfg)
	if !s.store.Put(cfg.ID, seq, res) {
		log.Printf("retry %s: result superseded by a newer cycle", id)
	}
	return nil
}

// HasSource 查询某个源是否在注册表中，API 层用它做参数校验
func (s *Scheduler) HasSource(id string) bool {
	_, ok := s.lookup(id)
	return ok
}

// Sources 返回注册表（启动时固化，调用方不得修改）
func (s *Scheduler) Sources() []collector.SourceConfig {
	return s.sources
}

func (s *Scheduler) lookup(id string) (collector.SourceConfig, bool) {
	for _, src := range s.sources {
		if src.ID == id {
			return src, true
		}
	}
	return collector.SourceConfig{}, false
}
