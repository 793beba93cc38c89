package core

import (
	"sort"
	"time"
)

// BookingFrequency 是预订频率档位，由平均预订间隔推导。
type BookingFrequency string

const (
	BookingFrequencyHigh   BookingFrequency = "high"
	BookingFrequencyMedium BookingFrequency = "medium"
	BookingFrequencyLow    BookingFrequency = "low"
)

// TravelPattern 是从预订行为推导出的旅行模式。
type TravelPattern struct {
	PreferredSeasons   []string         `json:"preferred_seasons"` // 最多 2 个
	AvgBudget          float64          `json:"avg_budget"`
	MinBudget          float64          `json:"min_budget"`
	MaxBudget          float64          `json:"max_budget"`
	AvgDurationDays    float64          `json:"avg_duration_days"`
	PreferredGroupSize int              `json:"preferred_group_size"`
	BookingFrequency   BookingFrequency `json:"booking_frequency"`
}

// BehaviorProfile 是用户行为的加权统计画像。
//
// 一句话定义：画像 = 推荐链路的"全局上下文 + 特征源 + 决策信号"。
// 它不属于某一个召回源，而是：
//   - 被内容召回、协同召回共享
//   - 驱动融合层的置信度计算
//   - 以 TTL 缓存，新行为事件写入时失效
//
// 所有频次表的 value ≥ 0；DiversityScore 是类别分布的归一化香农熵，
// 类别数 < 2 时恒为 0。
type BehaviorProfile struct {
	UserID     string `json:"user_id"`
	SnapshotID string `json:"snapshot_id"`

	CategoryFreq    map[string]float64 `json:"category_freq"`
	DestinationFreq map[string]float64 `json:"destination_freq"`
	TagFreq         map[string]float64 `json:"tag_freq"`

	DiversityScore float64       `json:"diversity_score"` // [0,1]
	Travel         TravelPattern `json:"travel"`

	ActivityLevel float64 `json:"activity_level"` // [0,100]
	SocialLevel   float64 `json:"social_level"`   // [0,100]

	Persona string `json:"persona"`

	BuiltAt time.Time `json:"built_at"`
}

// NewBehaviorProfile 创建零值画像。缺数据时返回零值画像而不是错误。
func NewBehaviorProfile(userID string) *BehaviorProfile {
	return &BehaviorProfile{
		UserID:          userID,
		CategoryFreq:    make(map[string]float64),
		DestinationFreq: make(map[string]float64),
		TagFreq:         make(map[string]float64),
		Travel:          TravelPattern{BookingFrequency: BookingFrequencyLow},
		BuiltAt:         time.Now(),
	}
}

// IsEmpty 判断画像是否没有任何行为信号。
// 空画像时内容/协同召回为空，响应降级为纯趋势推荐。
func (p *BehaviorProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.CategoryFreq) == 0 && len(p.DestinationFreq) == 0 && len(p.TagFreq) == 0
}

// Vector 把类别/目的地/标签频次拼成带命名空间前缀的并集向量，
// 协同召回在该向量上计算余弦相似度（缺失 key 视为 0）。
func (p *BehaviorProfile) Vector() map[string]float64 {
	if p == nil {
		return nil
	}
	v := make(map[string]float64, len(p.CategoryFreq)+len(p.DestinationFreq)+len(p.TagFreq))
	for k, f := range p.CategoryFreq {
		v["cat:"+k] = f
	}
	for k, f := range p.DestinationFreq {
		v["dest:"+k] = f
	}
	for k, f := range p.TagFreq {
		v["tag:"+k] = f
	}
	return v
}

// DataPoints 统计非零画像信号数：类别数 + 偏好季节数 + 活跃档（1 或 0）。
// 融合层的置信度 = min(100, 5 × DataPoints)。
func (p *BehaviorProfile) DataPoints() int {
	if p == nil {
		return 0
	}
	n := len(p.CategoryFreq) + len(p.Travel.PreferredSeasons)
	if p.ActivityLevel > 0 {
		n++
	}
	return n
}

// TopCategories 返回频次最高的 n 个类别。
func (p *BehaviorProfile) TopCategories(n int) []string {
	return topKeys(p.CategoryFreq, n)
}

// TopDestinations 返回频次最高的 n 个目的地。
func (p *BehaviorProfile) TopDestinations(n int) []string {
	return topKeys(p.DestinationFreq, n)
}

// TopTags 返回频次最高的 n 个标签。
func (p *BehaviorProfile) TopTags(n int) []string {
	return topKeys(p.TagFreq, n)
}

// topKeys 按频次降序取前 n 个 key；同频次按字典序，保证结果确定。
func topKeys(freq map[string]float64, n int) []string {
	if len(freq) == 0 || n <= 0 {
		return nil
	}
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
