// Package feast 提供基于 Feast 在线特征的用户向量实现。
//
// 默认的邻居向量来自画像缓存（实时聚合）；当离线作业把用户偏好向量
// 物化到 Feast 在线存储后，可以用本包替换，省掉邻居画像的在途计算。
package feast

import (
	"context"

	feastsdk "github.com/feast-dev/feast/sdk/go"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/recall"
)

// Vectors 实现 recall.Vectors：按用户取预计算的偏好向量。
//
// 特征名即向量维度（如 "user_pref:cat_adventure"），值为偏好频次。
// 取不到或为 0 的维度视为缺失，与稀疏向量的语义一致。
type Vectors struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名
	Project string

	// Features 要拉取的特征全名列表
	Features []string

	// EntityKey 实体键名，默认 "user_id"
	EntityKey string
}

var _ recall.Vectors = (*Vectors)(nil)

// New 连接 Feast Feature Server（gRPC）。
func New(host string, port int, project string, features []string) (*Vectors, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUpstreamUnavail,
			"feast: connect failed: "+err.Error())
	}
	return &Vectors{
		client:   client,
		Project:  project,
		Features: features,
	}, nil
}

func (v *Vectors) entityKey() string {
	if v.EntityKey == "" {
		return "user_id"
	}
	return v.EntityKey
}

// Vector 拉取单个用户的在线特征并转为稀疏向量。
func (v *Vectors) Vector(ctx context.Context, userID string) (map[string]float64, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: v.Features,
		Entities: []feastsdk.Row{
			{v.entityKey(): feastsdk.StrVal(userID)},
		},
		Project: v.Project,
	}

	resp, err := v.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUpstreamUnavail,
			"feast: get online features failed: "+err.Error())
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return map[string]float64{}, nil
	}

	vec := make(map[string]float64, len(v.Features))
	for name, val := range rows[0] {
		if val == nil {
			continue
		}
		f := val.GetDoubleVal()
		if f == 0 {
			f = float64(val.GetFloatVal())
		}
		if f == 0 {
			f = float64(val.GetInt64Val())
		}
		if f == 0 {
			f = float64(val.GetInt32Val())
		}
		if f <= 0 {
			continue
		}
		vec[name] = f
	}
	return vec, nil
}
