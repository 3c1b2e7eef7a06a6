package sentiment

import "testing"

func TestVaderScorerPolarity(t *testing.T) {
	scorer := NewVaderScorer()

	tests := []struct {
		name string
		text string
		sign int // -1 negative, 0 neutral-ish, +1 positive
	}{
		{"clearly negative", "I hate everything, this is terrible and awful", -1},
		{"clearly positive", "I passed my exam, I'm so happy and proud!", +1},
		{"empty text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(tt.text)
			if score < -1 || score > 1 {
				t.Fatalf("Score out of range: %f", score)
			}
			switch tt.sign {
			case -1:
				if score >= 0 {
					t.Errorf("Expected negative score, got %f", score)
				}
			case +1:
				if score <= 0 {
					t.Errorf("Expected positive score, got %f", score)
				}
			case 0:
				if score != 0 {
					t.Errorf("Expected zero score, got %f", score)
				}
			}
		})
	}
}

func TestIsNegative(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{"well below threshold", -0.8, true},
		{"just below threshold", -0.31, true},
		{"at threshold", -0.3, false},
		{"mildly negative", -0.1, false},
		{"neutral", 0, false},
		{"positive", 0.6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNegative(tt.score); got != tt.want {
				t.Errorf("IsNegative(%f) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}
