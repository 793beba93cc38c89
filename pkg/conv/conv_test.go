package conv

import (
	"reflect"
	"strconv"
	"testing"
)

func TestConvertSlice(t *testing.T) {
	got := ConvertSlice([]int{1, -2, 3}, func(n int) (string, bool) {
		if n < 0 {
			return "", false
		}
		return strconv.Itoa(n), true
	})
	if !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("ConvertSlice = %v, want [1 3]", got)
	}

	if out := ConvertSlice(nil, func(n int) (int, bool) { return n, true }); out != nil {
		t.Errorf("nil input: got %v, want nil", out)
	}
}

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{
		"name":    "fusion",
		"enabled": true,
		"n":       3,
	}

	if got := ConfigGet(cfg, "name", ""); got != "fusion" {
		t.Errorf("string hit = %q", got)
	}
	if got := ConfigGet(cfg, "enabled", false); !got {
		t.Error("bool hit = false")
	}
	if got := ConfigGet(cfg, "missing", "fallback"); got != "fallback" {
		t.Errorf("missing key = %q", got)
	}
	// 类型不符退回默认值
	if got := ConfigGet(cfg, "n", "zero"); got != "zero" {
		t.Errorf("type mismatch = %q", got)
	}
	if got := ConfigGet[string](nil, "any", "d"); got != "d" {
		t.Errorf("nil map = %q", got)
	}
}

func TestConfigGetInt(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		key  string
		want int
	}{
		{"int value", map[string]any{"n": 5}, "n", 5},
		{"int64 value", map[string]any{"n": int64(7)}, "n", 7},
		{"float64 from json", map[string]any{"n": 9.0}, "n", 9},
		{"missing key", map[string]any{}, "n", 42},
		{"wrong type", map[string]any{"n": "ten"}, "n", 42},
		{"nil map", nil, "n", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfigGetInt(tt.m, tt.key, 42); got != tt.want {
				t.Errorf("ConfigGetInt = %d, want %d", got, tt.want)
			}
		})
	}
}
