package main

import (
	"log"

	"github.com/HaoYuet/HeadlineHub/internal/collector"
	"github.com/HaoYuet/HeadlineHub/internal/config"
	"github.com/HaoYuet/HeadlineHub/internal/processor"
	"github.com/HaoYuet/HeadlineHub/internal/scheduler"
	"github.com/HaoYuet/HeadlineHub/internal/storage"
)

// 一个仅执行一轮采集的命令行入口：适合手动触发和排查单个源的问题
func main() {
	cfg := config.Load()

	store := storage.NewStore()

	fetcher := collector.NewFetcher(cfg.FetchTimeout, collector.DefaultStrategies(cfg.ProxyPrefixes))
	resolver := collector.NewSourceResolver(fetcher)

	s, err := scheduler.New(cfg.CronSpec, collector.DefaultSources, resolver, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	// 只执行一轮后打印每个源的概况
	s.RunCycle()

	snap, updatedAt := store.Snapshot()
	for _, src := range collector.DefaultSources {
		res, ok := snap[src.ID]
		if !ok {
			log.Printf("%-14s no result", src.ID)
			continue
		}
		switch res.Status {
		case processor.StatusSuccess:
			log.Printf("%-14s ok, items=%d, %s", src.ID, len(res.Items), res.UpdateLabel)
		default:
			log.Printf("%-14s failed: %s", src.ID, res.Reason)
		}
	}
	log.Printf("cycle finished at %s", updatedAt.Format("2006-01-02 15:04:05"))
}
