package optimize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
)

func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides models.OptimizeOverrides
		want      func(cfg optimizer.Config) optimizer.Config
	}{
		{
			name:      "empty overrides keep defaults",
			overrides: models.OptimizeOverrides{},
			want:      func(cfg optimizer.Config) optimizer.Config { return cfg },
		},
		{
			name: "single knob",
			overrides: models.OptimizeOverrides{
				MinTextLength: intPtr(40),
			},
			want: func(cfg optimizer.Config) optimizer.Config {
				cfg.MinTextLength = 40
				return cfg
			},
		},
		{
			name: "zero values are real settings",
			overrides: models.OptimizeOverrides{
				Enabled:               boolPtr(false),
				EnableCJKSegmentation: boolPtr(false),
			},
			want: func(cfg optimizer.Config) optimizer.Config {
				cfg.Enabled = false
				cfg.EnableCJKSegmentation = false
				return cfg
			},
		},
		{
			name: "every knob",
			overrides: models.OptimizeOverrides{
				Enabled:               boolPtr(true),
				MinTextLength:         intPtr(30),
				MaxFeatures:           intPtr(5000),
				MinDF:                 intPtr(1),
				MaxDF:                 floatPtr(0.9),
				ScoreFloor:            floatPtr(0.1),
				ContentRatio:          floatPtr(0.5),
				MinKeepK:              intPtr(10),
				PercentileThreshold:   floatPtr(0.75),
				MaxLinkDensity:        floatPtr(0.4),
				MinAlphanumericRatio:  floatPtr(0.6),
				EnableCJKSegmentation: boolPtr(true),
			},
			want: func(optimizer.Config) optimizer.Config {
				return optimizer.Config{
					Enabled:               true,
					MinTextLength:         30,
					MaxFeatures:           5000,
					MinDF:                 1,
					MaxDF:                 0.9,
					ScoreFloor:            0.1,
					ContentRatio:          0.5,
					MinKeepK:              10,
					PercentileThreshold:   0.75,
					MaxLinkDensity:        0.4,
					MinAlphanumericRatio:  0.6,
					EnableCJKSegmentation: true,
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyOverrides(optimizer.DefaultConfig(), tt.overrides)
			want := tt.want(optimizer.DefaultConfig())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ApplyOverrides mismatch:\n%s", diff)
			}
		})
	}
}
