package storage

import (
	"log"
	"sync"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/processor"
)

type entry struct {
	seq    uint64
	result processor.SourceResult
}

// Store 以 sourceID 为键保存每个源最近一次的结果，进程内存态，不落盘。
// 写入必须带上采集轮次的序号：迟到的旧轮次写入会被直接丢弃，
// 保证新一轮的结果不会被旧请求的晚完成覆盖。
type Store struct {
	mu        sync.RWMutex
	results   map[string]entry
	updatedAt time.Time
}

func NewStore() *Store {
	return &Store{
		results: make(map[string]entry),
	}
}

// Put 写入某个源的结果。seq 小于该源已存记录的序号时视为过期写入，
// 返回 false 且不改动任何状态。
func (s *Store) Put(sourceID string, seq uint64, result processor.SourceResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.results[sourceID]; ok && seq < prev.seq {
		log.Printf("store: drop stale result for %s (seq %d < %d)", sourceID, seq, prev.seq)
		return false
	}
	s.results[sourceID] = entry{seq: seq, result: result}
	s.updatedAt = time.Now()
	return true
}

// Get 返回某个源最近一次的结果
func (s *Store) Get(sourceID string) (processor.SourceResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.results[sourceID]
	return e.result, ok
}

// Snapshot 返回全部结果的副本与整体最后更新时间，供 API 层一次性读取
func (s *Store) Snapshot() (map[string]processor.SourceResult, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]processor.SourceResult, len(s.results))
	for id, e := range s.results {
		out[id] = e.result
	}
	return out, s.updatedAt
}
