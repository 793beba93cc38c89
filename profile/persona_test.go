package profile

import (
	"context"
	"testing"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name    string
		profile core.BehaviorProfile
		want    string
	}{
		{
			name: "explorer: diverse and active",
			profile: core.BehaviorProfile{
				DiversityScore: 0.8,
				ActivityLevel:  70,
			},
			want: "explorer",
		},
		{
			name: "luxury traveler beats enthusiast",
			profile: core.BehaviorProfile{
				ActivityLevel: 65,
				Travel:        core.TravelPattern{AvgBudget: 5000},
			},
			want: "luxury_traveler",
		},
		{
			name: "frequent traveler by booking cadence",
			profile: core.BehaviorProfile{
				ActivityLevel: 10,
				Travel:        core.TravelPattern{BookingFrequency: core.BookingFrequencyHigh},
			},
			want: "frequent_traveler",
		},
		{
			name: "enthusiast: active but narrow",
			profile: core.BehaviorProfile{
				DiversityScore: 0.2,
				ActivityLevel:  65,
			},
			want: "enthusiast",
		},
		{
			name:    "casual traveler",
			profile: core.BehaviorProfile{ActivityLevel: 25},
			want:    "casual_traveler",
		},
		{
			name:    "fallback for zero signals",
			profile: core.BehaviorProfile{},
			want:    FallbackPersona,
		},
	}

	classifier := DefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Classify(context.Background(), &tt.profile)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tt.want {
				t.Errorf("persona = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRuleClassifier_RejectsBadExpr(t *testing.T) {
	_, err := NewRuleClassifier([]Rule{{Expr: "diversity >=", Persona: "x"}}, "")
	if err == nil {
		t.Fatal("invalid expression must fail at compile time")
	}
}

func TestNewRuleClassifier_RejectsEmptyPersona(t *testing.T) {
	_, err := NewRuleClassifier([]Rule{{Expr: "diversity >= 0.5", Persona: ""}}, "")
	if err == nil {
		t.Fatal("empty persona must be rejected")
	}
}
