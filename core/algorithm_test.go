package core

import "testing"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"collaborative", AlgorithmCollaborative, false},
		{"content", AlgorithmContent, false},
		{"knowledge_graph", AlgorithmGraphWalk, false},
		{"hybrid", AlgorithmHybrid, false},
		{"", "", true},
		{"magic", "", true},
		{"Hybrid", "", true}, // 大小写敏感，不做静默回退
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				if !IsInvalidArgument(err) {
					t.Fatalf("ParseAlgorithm(%q) err = %v, want INVALID_ARGUMENT", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestAlgorithmKinds(t *testing.T) {
	if got := AlgorithmHybrid.Kinds(); len(got) != 3 {
		t.Errorf("hybrid kinds = %v, want all three signals", got)
	}
	if got := AlgorithmContent.Kinds(); len(got) != 1 || got[0] != SignalContent {
		t.Errorf("content kinds = %v, want [content]", got)
	}
}

func TestRecommendConfig_Normalize(t *testing.T) {
	cfg := RecommendConfig{}.Normalize()
	def := DefaultRecommendConfig()
	if cfg.NFactors != def.NFactors || cfg.WalkLength != def.WalkLength {
		t.Errorf("Normalize zero config = %+v, want defaults", cfg)
	}

	// 默认条数不能超过上限
	cfg = RecommendConfig{MaxRecommendations: 5, DefaultRecommendations: 50}.Normalize()
	if cfg.DefaultRecommendations != 5 {
		t.Errorf("DefaultRecommendations = %d, want clamped to max 5", cfg.DefaultRecommendations)
	}
}

func TestRecommendConfig_Weight(t *testing.T) {
	cfg := RecommendConfig{SignalWeights: map[SignalKind]float64{
		SignalCollaborative: 0.6,
		SignalContent:       -1,
	}}
	tests := []struct {
		name          string
		kind          SignalKind
		participating int
		want          float64
	}{
		{"configured", SignalCollaborative, 3, 0.6},
		{"negative falls back to equal share", SignalContent, 2, 0.5},
		{"unconfigured falls back to equal share", SignalGraphWalk, 4, 0.25},
		{"no participants", SignalGraphWalk, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Weight(tt.kind, tt.participating); got != tt.want {
				t.Errorf("Weight(%s, %d) = %v, want %v", tt.kind, tt.participating, got, tt.want)
			}
		})
	}
}

func TestProduct_SuitableFor(t *testing.T) {
	universal := &Product{ID: "p1"}
	if !universal.SuitableFor("干性") {
		t.Error("product without skin types should suit everyone")
	}
	dry := &Product{ID: "p2", SkinTypes: []string{"干性", "中性"}}
	if !dry.SuitableFor("干性") || dry.SuitableFor("油性") {
		t.Error("skin type matching broken")
	}
}
