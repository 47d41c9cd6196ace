package request

import (
	"errors"
	"testing"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/search/mode"
)

func f64(v float64) *float64 { return &v }

func TestNew_Defaults(t *testing.T) {
	r, err := New(Params{Query: "capital gains tax"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if r.Mode() != mode.Vector {
		t.Errorf("Mode() = %q, want vector", r.Mode())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
	if r.MinScore() != DefaultMinScore {
		t.Errorf("MinScore() = %f", r.MinScore())
	}
	if r.VectorWeight() != DefaultVectorWeight || r.KeywordWeight() != DefaultKeywordWeight {
		t.Errorf("weights = %f/%f", r.VectorWeight(), r.KeywordWeight())
	}
	if r.Fuzzy() {
		t.Error("Fuzzy() = true, want false")
	}
	if r.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %f", r.Threshold())
	}
	if r.RRFK() != DefaultRRFK {
		t.Errorf("RRFK() = %d", r.RRFK())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"empty query", Params{}},
		{"invalid mode", Params{Query: "q", Mode: "semantic"}},
		{"min_score too high", Params{Query: "q", MinScore: f64(1.5)}},
		{"min_score negative", Params{Query: "q", MinScore: f64(-0.1)}},
		{"weights over 1", Params{Query: "q", VectorWeight: f64(0.5), KeywordWeight: f64(0.6)}},
		{"weights under 1", Params{Query: "q", VectorWeight: f64(0.3), KeywordWeight: f64(0.3)}},
		{"negative weight", Params{Query: "q", VectorWeight: f64(-0.2), KeywordWeight: f64(1.2)}},
		{"threshold out of range", Params{Query: "q", Threshold: f64(1.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)
			if err == nil {
				t.Fatal("New: expected error")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestNew_WeightTolerance(t *testing.T) {
	// 0.7 + 0.3005 is within the 1e-3 tolerance
	r, err := New(Params{Query: "q", Mode: mode.Hybrid, VectorWeight: f64(0.7), KeywordWeight: f64(0.3005)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Mode() != mode.Hybrid {
		t.Errorf("Mode() = %q", r.Mode())
	}
}

func TestNew_LimitClamping(t *testing.T) {
	r, err := New(Params{Query: "q", Limit: 5000})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}

	r, err = New(Params{Query: "q", Limit: -1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
}

func TestNew_ZeroMinScoreExplicit(t *testing.T) {
	r, err := New(Params{Query: "q", MinScore: f64(0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.MinScore() != 0 {
		t.Errorf("MinScore() = %f, want 0", r.MinScore())
	}
}
