// Package sentiment rates message polarity so the UI layer can decide
// when to surface support resources. It is a stateless bolt-on, not
// part of the conversation core.
package sentiment

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// NegativeThreshold is the compound score below which a message is
// treated as distressed.
const NegativeThreshold = -0.3

// Scorer rates the polarity of a piece of text in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text against the VADER sentiment lexicon.
type VaderScorer struct{}

// NewVaderScorer returns a ready-to-use VADER scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{}
}

// Score returns the compound polarity of text in [-1, 1].
func (s *VaderScorer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

// IsNegative reports whether score falls below NegativeThreshold.
func IsNegative(score float64) bool {
	return score < NegativeThreshold
}
