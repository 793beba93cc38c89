package recall

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/metrics"
	"github.com/vijeth06/Travel-blog--sub001/pkg/retry"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

// ProfileProvider 提供按用户取画像的能力，profile.Cache 实现此接口。
type ProfileProvider interface {
	Get(ctx context.Context, userID string) (*core.BehaviorProfile, error)
}

// Vectors 提供用户的偏好频次向量，协同召回在其上算余弦相似度。
// 默认实现走画像缓存；也可以换成 Feast 在线特征的预计算向量（ext/feast）。
type Vectors interface {
	Vector(ctx context.Context, userID string) (map[string]float64, error)
}

// ProfileVectors 把 ProfileProvider 适配为 Vectors。
// 邻居画像和请求方画像走同一条 singleflight 缓存路径。
type ProfileVectors struct {
	Profiles ProfileProvider
}

func (v *ProfileVectors) Vector(ctx context.Context, userID string) (map[string]float64, error) {
	p, err := v.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Vector(), nil
}

// 互动权重：邻居创作过的物品比点赞过的更可信。
const (
	peerAuthoredWeight = 2
	peerLikedWeight    = 1
)

// CollaborativeRecall 是基于用户的协同过滤召回源。
//
// 核心思想："行为相似的用户，喜欢相似的物品"。
//
// 算法流程：
//  1. 取有界的活跃用户池（最近活跃的 PoolSize 个）
//  2. 并发取每个候选邻居的画像向量，算余弦相似度（并集 key，缺失为 0）
//  3. 保留相似度 > MinSimilarity 的，按相似度取 TopPeers 个
//  4. 推荐邻居创作/点赞过、而目标用户未接触过的物品，
//     itemScore = Σ_peer sim(peer) × 互动权重
//
// 失败语义：单个邻居取画像/取行为失败只缩小邻居集，不中断批次。
type CollaborativeRecall struct {
	Activities core.ActivityRepository
	Vectors    Vectors

	// Catalog 可选：用于补候选的创建时间元信息。
	// 缺了它协同候选没有 created_at，融合层同分时排在有 created_at 的候选之后
	Catalog core.Catalog

	// PoolSize 活跃用户候选池大小，<=0 取 100
	PoolSize int

	// TopPeers 参与推荐的相似邻居数，<=0 取 10
	TopPeers int

	// MinSimilarity 邻居准入阈值，<=0 取 0.3
	MinSimilarity float64

	// MaxConcurrent 邻居画像拉取的并发上限，<=0 取 8
	MaxConcurrent int

	// TopK 返回的候选上限，<=0 取 50
	TopK int

	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

func (r *CollaborativeRecall) Name() string { return "recall.collaborative" }

func (r *CollaborativeRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Activities == nil || r.Vectors == nil || rctx == nil || rctx.Profile.IsEmpty() {
		return nil, nil
	}
	targetVec := rctx.Profile.Vector()

	poolSize := r.PoolSize
	if poolSize <= 0 {
		poolSize = 100
	}
	var pool []string
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		pool, inner = r.Activities.RecentActiveUsers(ctx, poolSize)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleActivity, core.ErrorCodeUpstreamUnavail,
			"activity repository unavailable: "+err.Error())
	}

	peers := r.rankPeers(ctx, rctx.UserID, targetVec, pool)
	if len(peers) == 0 {
		return nil, nil
	}

	// 目标用户已接触（创作/点赞/预订）的物品不再推荐
	seen, err := r.targetSeen(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}

	itemScores := make(map[core.ItemRef]float64)
	for _, peer := range peers {
		events, err := r.Activities.UserEvents(ctx, peer.userID)
		if err != nil {
			r.skipPeer(peer.userID, err)
			continue
		}
		for _, ev := range events {
			var w float64
			switch ev.Kind {
			case core.ActivityAuthored:
				w = peerAuthoredWeight
			case core.ActivityLiked:
				w = peerLikedWeight
			default:
				continue
			}
			if seen[ev.Target] {
				continue
			}
			itemScores[ev.Target] += peer.similarity * w
		}
	}

	out := make([]*core.Item, 0, len(itemScores))
	for ref, score := range itemScores {
		it := core.NewItem(ref)
		it.Score = score
		it.PutLabel("recall_source", utils.Label{Value: string(core.SourceCollaborative), Source: "recall"})
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Ref.Key() < out[j].Ref.Key()
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 50
	}
	if len(out) > topK {
		out = out[:topK]
	}

	// 截断后再补创建时间，目录查询次数以 TopK 为界。查不到就留空，不失败
	if r.Catalog != nil {
		for _, it := range out {
			ci, err := r.Catalog.Item(ctx, it.Ref)
			if err != nil {
				continue
			}
			it.Meta["created_at"] = ci.CreatedAt()
		}
	}
	return out, nil
}

type peerSim struct {
	userID     string
	similarity float64
}

// rankPeers 并发取邻居向量并按相似度排名。有界 fan-out，单邻居失败跳过。
func (r *CollaborativeRecall) rankPeers(
	ctx context.Context,
	targetUser string,
	targetVec map[string]float64,
	pool []string,
) []peerSim {
	minSim := r.MinSimilarity
	if minSim <= 0 {
		minSim = 0.3
	}
	maxConcurrent := r.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	var (
		mu    sync.Mutex
		peers []peerSim
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrent)

	for _, userID := range pool {
		if userID == targetUser {
			continue
		}
		uid := userID
		eg.Go(func() error {
			vec, err := r.Vectors.Vector(egCtx, uid)
			if err != nil {
				r.skipPeer(uid, err)
				return nil
			}
			sim := Cosine(targetVec, vec)
			if sim <= minSim {
				return nil
			}
			mu.Lock()
			peers = append(peers, peerSim{userID: uid, similarity: sim})
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait() // 错误都被吞成 skip，这里不会返回非 nil

	sort.Slice(peers, func(i, j int) bool {
		if peers[i].similarity != peers[j].similarity {
			return peers[i].similarity > peers[j].similarity
		}
		return peers[i].userID < peers[j].userID
	})

	topPeers := r.TopPeers
	if topPeers <= 0 {
		topPeers = 10
	}
	if len(peers) > topPeers {
		peers = peers[:topPeers]
	}
	return peers
}

func (r *CollaborativeRecall) targetSeen(ctx context.Context, userID string) (map[core.ItemRef]bool, error) {
	var events []core.ActivityEvent
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		events, inner = r.Activities.UserEvents(ctx, userID)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleActivity, core.ErrorCodeUpstreamUnavail,
			"activity repository unavailable: "+err.Error())
	}
	seen := make(map[core.ItemRef]bool, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case core.ActivityAuthored, core.ActivityLiked, core.ActivityBooked:
			seen[ev.Target] = true
		}
	}
	return seen, nil
}

func (r *CollaborativeRecall) skipPeer(userID string, err error) {
	if r.Metrics != nil {
		r.Metrics.PeerSkipped.Inc()
	}
	r.Logger.Warn().Err(err).Str("peer", userID).
		Str("code", core.ErrorCodeComputationSkipped).
		Msg("peer skipped in collaborative recall")
}

// Cosine 计算两个稀疏向量的余弦相似度，key 取并集，缺失视为 0。
// 频次非负，因此结果落在 [0,1]，且对称。
func Cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
