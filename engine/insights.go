package engine

import (
	"context"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// Insights 是面向用户的画像摘要，用于"为什么给我推这些"的解释页。
type Insights struct {
	UserID  string `json:"user_id"`
	Persona string `json:"persona"`

	TopCategories   []string `json:"top_categories"`
	TopDestinations []string `json:"top_destinations"`
	TopTags         []string `json:"top_tags"`

	DiversityScore float64 `json:"diversity_score"`
	ActivityLevel  float64 `json:"activity_level"`
	SocialLevel    float64 `json:"social_level"`

	Travel core.TravelPattern `json:"travel"`

	// Confidence 与推荐批次同一口径：min(100, 5 × 信号数)
	Confidence float64   `json:"confidence"`
	BuiltAt    time.Time `json:"built_at"`
}

// GetUserInsights 返回用户画像摘要。零行为用户得到空摘要而不是错误。
func (e *Engine) GetUserInsights(ctx context.Context, userID string) (*Insights, error) {
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: user id is required")
	}

	p, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Insights{
		UserID:          userID,
		Persona:         p.Persona,
		TopCategories:   p.TopCategories(5),
		TopDestinations: p.TopDestinations(5),
		TopTags:         p.TopTags(10),
		DiversityScore:  p.DiversityScore,
		ActivityLevel:   p.ActivityLevel,
		SocialLevel:     p.SocialLevel,
		Travel:          p.Travel,
		Confidence:      confidence(p),
		BuiltAt:         p.BuiltAt,
	}, nil
}
