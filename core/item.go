package core

import (
	"time"

	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

// ItemType 是目录物品的类型标记：游记内容或旅行套餐。
type ItemType string

const (
	ItemTypeContent ItemType = "content"
	ItemTypePackage ItemType = "package"
)

// ValidItemType 校验类型字符串是否合法（"" 表示不限类型）。
func ValidItemType(t ItemType) bool {
	return t == "" || t == ItemTypeContent || t == ItemTypePackage
}

// ItemRef 是目录物品的全局引用，(Type, ID) 唯一确定一个物品。
// 融合层按 Key() 去重。
type ItemRef struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`
}

// Key 返回去重用的唯一键。
func (r ItemRef) Key() string {
	return string(r.Type) + ":" + r.ID
}

// Engagement 是物品的互动统计，是趋势分与内容分的打分输入。
type Engagement struct {
	Likes    int     `json:"likes"`
	Comments int     `json:"comments"`
	Views    int     `json:"views"`
	Bookings int     `json:"bookings"`
	Rating   float64 `json:"rating"`
}

// CatalogItem 是目录物品的能力接口。
//
// 内容（Content）与套餐（TravelPackage）是两种不同的物品，
// 通过统一的能力接口暴露打分所需的维度，而不是用类型字符串在
// 运行期做分发，消除一类运行时类型错误。
type CatalogItem interface {
	Ref() ItemRef
	Category() string
	Destination() string
	Tags() []string
	Engagement() Engagement
	CreatedAt() time.Time
}

// Content 是游记/攻略类内容。
type Content struct {
	ID        string
	Cat       string
	Dest      string // 可为空：不是所有内容都绑定目的地
	TagList   []string
	Stats     Engagement
	Published time.Time
}

func (c *Content) Ref() ItemRef           { return ItemRef{Type: ItemTypeContent, ID: c.ID} }
func (c *Content) Category() string       { return c.Cat }
func (c *Content) Destination() string    { return c.Dest }
func (c *Content) Tags() []string         { return c.TagList }
func (c *Content) Engagement() Engagement { return c.Stats }
func (c *Content) CreatedAt() time.Time   { return c.Published }

// TravelPackage 是可预订的旅行套餐。
type TravelPackage struct {
	ID      string
	Cat     string
	Dest    string
	TagList []string
	Stats   Engagement
	Listed  time.Time
}

func (p *TravelPackage) Ref() ItemRef           { return ItemRef{Type: ItemTypePackage, ID: p.ID} }
func (p *TravelPackage) Category() string       { return p.Cat }
func (p *TravelPackage) Destination() string    { return p.Dest }
func (p *TravelPackage) Tags() []string         { return p.TagList }
func (p *TravelPackage) Engagement() Engagement { return p.Stats }
func (p *TravelPackage) CreatedAt() time.Time   { return p.Listed }

var (
	_ CatalogItem = (*Content)(nil)
	_ CatalogItem = (*TravelPackage)(nil)
)

// Item 是推荐链路中的统一承载结构：引用、分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	Ref    ItemRef
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(ref ItemRef) *Item {
	return &Item{
		Ref:    ref,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// CreatedAtMeta 读取 Meta 中的创建时间，用于同分时"新物品优先"的排序规则。
func (it *Item) CreatedAtMeta() time.Time {
	if it.Meta == nil {
		return time.Time{}
	}
	if ts, ok := it.Meta["created_at"].(time.Time); ok {
		return ts
	}
	return time.Time{}
}
