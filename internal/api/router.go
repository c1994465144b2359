package api

import (
	"net/http"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/processor"
	"github.com/HaoYuet/HeadlineHub/internal/scheduler"
	"github.com/HaoYuet/HeadlineHub/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store *storage.Store
	sched *scheduler.Scheduler
}

func NewServer(store *storage.Store, sched *scheduler.Scheduler) *Server {
	return &Server{store: store, sched: sched}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/sources", s.listSources)
		v1.GET("/news", s.listNews)
		v1.POST("/refresh", s.refreshAll)
		v1.POST("/sources/:id/retry", s.retrySource)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.sched.Sources(),
	})
}

// newsResponse 一次快照：每个源的最新结果 + 整体最后更新时间
type newsResponse struct {
	Sources   map[string]sourceNews `json:"sources"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

type sourceNews struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	processor.SourceResult
}

func (s *Server) listNews(c *gin.Context) {
	snap, updatedAt := s.store.Snapshot()

	out := make(map[string]sourceNews, len(snap))
	for _, src := range s.sched.Sources() {
		res, ok := snap[src.ID]
		if !ok {
			// 已注册但尚未出结果的源，对外表现为加载中
			res = processor.SourceResult{Status: processor.StatusLoading}
		}
		out[src.ID] = sourceNews{
			Name:         src.Name,
			Category:     src.Category,
			SourceResult: res,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": newsResponse{
			Sources:   out,
			UpdatedAt: updatedAt,
		},
	})
}

// refreshAll 在定时器之外强制发起新一轮全量采集，立即返回
func (s *Server) refreshAll(c *gin.Context) {
	go s.sched.RunCycle()
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "ok",
		"message": "refresh started",
	})
}

// retrySource 只重试指定的源，不影响其它源
func (s *Server) retrySource(c *gin.Context) {
	id := c.Param("id")
	if !s.sched.HasSource(id) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "unknown source: " + id,
		})
		return
	}

	go func() {
		// id 已校验，这里不会再失败
		_ = s.sched.RetrySource(id)
	}()
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "ok",
		"message": "retry started",
	})
}
