// Package profile 把不可变的行为日志聚合为加权偏好画像，
// 并通过 singleflight + TTL 缓存保证同一用户至多一个在途计算。
package profile

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/retry"
)

// 行为权重：创作 +3，预订 +2，点赞/评论 +1，浏览不计入类别/目的地。
// 标签不分行为类型，每次出现 +1。
var kindWeights = map[core.ActivityKind]float64{
	core.ActivityAuthored:  3,
	core.ActivityBooked:    2,
	core.ActivityLiked:     1,
	core.ActivityCommented: 1,
	core.ActivityViewed:    0,
}

// 预订间隔档位阈值
const (
	highFrequencyGap   = 30 * 24 * time.Hour
	mediumFrequencyGap = 90 * 24 * time.Hour
)

// Builder 把单个用户的行为日志聚合成 BehaviorProfile。
//
// 失败语义：
//   - 行为仓库不可用：重试一次后返回 UPSTREAM_UNAVAILABLE
//   - 用户没有任何行为：返回零值画像，不是错误
//   - 关注数读取失败：按 0 处理并记日志（COMPUTATION_SKIPPED 语义）
type Builder struct {
	Activities core.ActivityRepository

	// Persona 为空时使用 DefaultClassifier()
	Persona Classifier

	Logger zerolog.Logger
}

// Build 构建画像。永远不会因为"数据少"而报错。
func (b *Builder) Build(ctx context.Context, userID string) (*core.BehaviorProfile, error) {
	var events []core.ActivityEvent
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		events, inner = b.Activities.UserEvents(ctx, userID)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleActivity, core.ErrorCodeUpstreamUnavail,
			"activity repository unavailable: "+err.Error())
	}

	p := core.NewBehaviorProfile(userID)
	p.SnapshotID = uuid.NewString()

	var (
		totalWeighted float64
		commentsGiven int
		bookings      []core.ActivityEvent
	)

	for _, ev := range events {
		w := kindWeights[ev.Kind]
		totalWeighted += w

		if w > 0 {
			if ev.Category != "" {
				p.CategoryFreq[ev.Category] += w
			}
			if ev.Destination != "" {
				p.DestinationFreq[ev.Destination] += w
			}
		}
		for _, tag := range ev.Tags {
			p.TagFreq[tag]++
		}

		switch ev.Kind {
		case core.ActivityCommented:
			commentsGiven++
		case core.ActivityBooked:
			bookings = append(bookings, ev)
		}
	}

	p.DiversityScore = diversity(p.CategoryFreq)
	p.Travel = travelPattern(bookings, time.Now())
	p.ActivityLevel = math.Min(100, totalWeighted*2)

	follows, err := b.Activities.FollowsGiven(ctx, userID)
	if err != nil {
		// 单个信号失败不影响整体画像
		b.Logger.Warn().Err(err).Str("user_id", userID).
			Str("code", core.ErrorCodeComputationSkipped).
			Msg("follows lookup failed, social level degrades to comments only")
		follows = 0
	}
	p.SocialLevel = math.Min(100, float64(follows*3+commentsGiven)*2)

	classifier := b.Persona
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	persona, err := classifier.Classify(ctx, p)
	if err != nil {
		b.Logger.Warn().Err(err).Str("user_id", userID).Msg("persona classification failed")
		persona = FallbackPersona
	}
	p.Persona = persona

	return p, nil
}

// diversity 计算类别分布的归一化香农熵：
// H = -Σ p_i·log2(p_i)，diversity = H / log2(k)。
// 类别数 < 2 时定义为 0。
func diversity(freq map[string]float64) float64 {
	var total float64
	k := 0
	for _, f := range freq {
		if f > 0 {
			total += f
			k++
		}
	}
	if k < 2 || total == 0 {
		return 0
	}

	var h float64
	for _, f := range freq {
		if f <= 0 {
			continue
		}
		pi := f / total
		h -= pi * math.Log2(pi)
	}
	return h / math.Log2(float64(k))
}

// travelPattern 从预订事件推导旅行模式。
func travelPattern(bookings []core.ActivityEvent, now time.Time) core.TravelPattern {
	tp := core.TravelPattern{BookingFrequency: core.BookingFrequencyLow}
	if len(bookings) == 0 {
		return tp
	}

	var (
		amountSum   float64
		amountCount int
		durSum      int
		durCount    int
		seasonCount = map[string]int{}
		groupCount  = map[int]int{}
	)
	tp.MinBudget = math.Inf(1)

	for _, ev := range bookings {
		if ev.Amount > 0 {
			amountSum += ev.Amount
			amountCount++
			tp.MinBudget = math.Min(tp.MinBudget, ev.Amount)
			tp.MaxBudget = math.Max(tp.MaxBudget, ev.Amount)
		}
		if ev.DurationDays > 0 {
			durSum += ev.DurationDays
			durCount++
		}
		if ev.GroupSize > 0 {
			groupCount[ev.GroupSize]++
		}
		seasonCount[seasonOf(ev.OccurredAt.Month())]++
	}

	if amountCount > 0 {
		tp.AvgBudget = amountSum / float64(amountCount)
	} else {
		tp.MinBudget = 0
	}
	if durCount > 0 {
		tp.AvgDurationDays = float64(durSum) / float64(durCount)
	}
	tp.PreferredGroupSize = modeGroupSize(groupCount)
	tp.PreferredSeasons = topSeasons(seasonCount, 2)
	tp.BookingFrequency = bookingFrequency(bookings, now)

	return tp
}

// seasonOf 按季度把月份映射到季节。
func seasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

// bookingFrequency 由平均预订间隔分档：<30d high，<90d medium，否则 low。
// 只有一次预订时按该次预订距今的时长分档。
func bookingFrequency(bookings []core.ActivityEvent, now time.Time) core.BookingFrequency {
	times := make([]time.Time, 0, len(bookings))
	for _, ev := range bookings {
		times = append(times, ev.OccurredAt)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var gap time.Duration
	if len(times) == 1 {
		gap = now.Sub(times[0])
	} else {
		var sum time.Duration
		for i := 1; i < len(times); i++ {
			sum += times[i].Sub(times[i-1])
		}
		gap = sum / time.Duration(len(times)-1)
	}

	switch {
	case gap < highFrequencyGap:
		return core.BookingFrequencyHigh
	case gap < mediumFrequencyGap:
		return core.BookingFrequencyMedium
	default:
		return core.BookingFrequencyLow
	}
}

func modeGroupSize(count map[int]int) int {
	best, bestN := 0, 0
	for size, n := range count {
		if n > bestN || (n == bestN && size < best) {
			best, bestN = size, n
		}
	}
	return best
}

func topSeasons(count map[string]int, n int) []string {
	if len(count) == 0 {
		return nil
	}
	seasons := make([]string, 0, len(count))
	for s := range count {
		seasons = append(seasons, s)
	}
	sort.Slice(seasons, func(i, j int) bool {
		if count[seasons[i]] != count[seasons[j]] {
			return count[seasons[i]] > count[seasons[j]]
		}
		return seasons[i] < seasons[j]
	})
	if len(seasons) > n {
		seasons = seasons[:n]
	}
	return seasons
}
