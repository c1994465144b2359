package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformed 表示响应内容不是可解析的 XML
	ErrMalformed = errors.New("malformed feed")
	// ErrEmpty 表示解析后没有任何可用条目
	ErrEmpty = errors.New("feed contains no usable entries")
)

// Item 归一化后的单条新闻
type Item struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"publishedAt"`
	// Rank 是该条目在源内的稳定序号，从 0 开始
	Rank int `json:"rank"`
	// Featured 前三名条目由前端做突出展示
	Featured bool `json:"featured"`
}

const (
	// 每个源每轮最多保留 8 条；窗口按原始条目顺序截取，空标题过滤在截取之后，
	// 所以即便原文超过 8 条，输出也可能不足 8 条
	maxItems = 8

	featuredCount = 3
)

type schema int

const (
	schemaUnknown schema = iota
	schemaRSS
	schemaAtom
)

// probeDoc 只用于探测 schema：优先找 RSS 2.0 的 item 容器，其次 Atom 的 entry 容器
type probeDoc struct {
	XMLName xml.Name
	Items   []struct{} `xml:"channel>item"`
	Entries []struct{} `xml:"entry"`
}

func detectSchema(raw []byte) (schema, error) {
	var p probeDoc
	if err := xml.Unmarshal(raw, &p); err != nil {
		return schemaUnknown, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case len(p.Items) > 0:
		return schemaRSS, nil
	case len(p.Entries) > 0:
		return schemaAtom, nil
	default:
		return schemaUnknown, nil
	}
}

// xmlLink 同时兼容属性形式（Atom 的 href）与文本形式（RSS）的链接
type xmlLink struct {
	Href  string `xml:"href,attr"`
	Value string `xml:",chardata"`
}

// resolve 优先取 href 属性，其次取文本内容，两者皆空时返回空串
func (l xmlLink) resolve() string {
	if l.Href != "" {
		return l.Href
	}
	return strings.TrimSpace(l.Value)
}

type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        xmlLink `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
}

type atomDoc struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string    `xml:"title"`
	Links     []xmlLink `xml:"link"`
	Summary   string    `xml:"summary"`
	Content   string    `xml:"content"`
	Published string    `xml:"published"`
	Updated   string    `xml:"updated"`
}

// rawEntry 两种 schema 解析后的统一中间形态，保持文档内的原始顺序
type rawEntry struct {
	title     string
	link      string
	summary   string
	published string
}

// Parse 将原始响应体解析为归一化条目列表。
// fetchedAt 用于条目缺失或无法解析发布时间时的兜底值。
// 返回 ErrMalformed 表示内容不是 XML，返回 ErrEmpty 表示没有任何可用条目。
func Parse(raw []byte, fetchedAt time.Time) ([]Item, error) {
	sch, err := detectSchema(raw)
	if err != nil {
		return nil, err
	}

	var entries []rawEntry
	switch sch {
	case schemaRSS:
		entries, err = rssEntries(raw)
	case schemaAtom:
		entries, err = atomEntries(raw)
	default:
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}

	// 先按原始顺序截取窗口，再过滤空标题
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		title := cleanText(e.title)
		if title == "" {
			continue
		}
		rank := len(items)
		items = append(items, Item{
			Title:       title,
			Link:        strings.TrimSpace(e.link),
			Summary:     cleanText(e.summary),
			PublishedAt: parseDate(e.published, fetchedAt),
			Rank:        rank,
			Featured:    rank < featuredCount,
		})
	}

	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return items, nil
}

func rssEntries(raw []byte) ([]rawEntry, error) {
	var doc rssDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	entries := make([]rawEntry, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		entries = append(entries, rawEntry{
			title:     it.Title,
			link:      it.Link.resolve(),
			summary:   it.Description,
			published: it.PubDate,
		})
	}
	return entries, nil
}

func atomEntries(raw []byte) ([]rawEntry, error) {
	var doc atomDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	entries := make([]rawEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		summary := e.Summary
		if strings.TrimSpace(summary) == "" {
			summary = e.Content
		}
		published := e.Published
		if strings.TrimSpace(published) == "" {
			published = e.Updated
		}
		entries = append(entries, rawEntry{
			title:     e.Title,
			link:      firstLink(e.Links),
			summary:   summary,
			published: published,
		})
	}
	return entries, nil
}

// firstLink 选第一个带 href 属性的链接，找不到时退回第一个文本链接
func firstLink(links []xmlLink) string {
	for _, l := range links {
		if l.Href != "" {
			return l.Href
		}
	}
	for _, l := range links {
		if v := strings.TrimSpace(l.Value); v != "" {
			return v
		}
	}
	return ""
}

// cleanText 去除首尾空白；部分源会把 CDATA 包装原样输出成文本，一并剥掉
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "<![CDATA["), "]]>"))
	}
	return s
}

// 各源的日期格式五花八门，逐个尝试已知格式
var dateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
