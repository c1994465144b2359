package processor

import (
	"fmt"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/parser"
)

// 源在一轮采集后的最终状态；loading 仅由 API 层为尚未出结果的源合成
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusLoading = "loading"
)

// SourceResult 某个源在一轮采集中的最终结果。
// 每轮整体替换上一轮的结果，不做增量合并。
type SourceResult struct {
	Status      string        `json:"status"`
	Items       []parser.Item `json:"items,omitempty"`
	UpdateLabel string        `json:"updateLabel,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Success 用解析结果构造成功态，更新标签取最前一条（rank 0）的发布时间
func Success(items []parser.Item, now time.Time) SourceResult {
	label := ""
	if len(items) > 0 {
		label = RelativeLabel(items[0].PublishedAt, now)
	}
	return SourceResult{
		Status:      StatusSuccess,
		Items:       items,
		UpdateLabel: label,
		FetchedAt:   now,
	}
}

// Failure 构造失败态，reason 取最后一个底层错误的文案
func Failure(err error, now time.Time) SourceResult {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return SourceResult{
		Status:    StatusFailure,
		Reason:    reason,
		FetchedAt: now,
	}
}

// RelativeLabel 把发布时间格式化为相对时间文案。
// 负值（发布时间在未来）与一分钟内统一显示为 just updated。
func RelativeLabel(published, now time.Time) string {
	d := now.Sub(published)
	switch {
	case d < time.Minute:
		return "just updated"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
