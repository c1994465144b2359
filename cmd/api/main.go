package main

import (
	"log"

	"github.com/HaoYuet/HeadlineHub/internal/api"
	"github.com/HaoYuet/HeadlineHub/internal/collector"
	"github.com/HaoYuet/HeadlineHub/internal/config"
	"github.com/HaoYuet/HeadlineHub/internal/scheduler"
	"github.com/HaoYuet/HeadlineHub/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store := storage.NewStore()

	fetcher := collector.NewFetcher(cfg.FetchTimeout, collector.DefaultStrategies(cfg.ProxyPrefixes))
	resolver := collector.NewSourceResolver(fetcher)

	s, err := scheduler.New(cfg.CronSpec, collector.DefaultSources, resolver, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	// API
	r := gin.Default()
	apiServer := api.NewServer(store, s)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
