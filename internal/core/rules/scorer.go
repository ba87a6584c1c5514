// Package rules implements the deterministic keyword/pattern classifiers that
// back the model path. They are pure functions over the shared taxonomy and
// never fail, which is what makes the fallback guarantee hold.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

const (
	keywordWeight = 2
	patternWeight = 3
)

// Scorer scores text against the document taxonomy. The zero value is not
// usable; construct with NewScorer.
type Scorer struct {
	taxonomy      []domain.TaxonomyEntry
	confidenceCap float64
}

func NewScorer() *Scorer {
	return NewScorerWithCap(domain.RuleConfidenceCap)
}

// NewScorerWithCap allows tuning the rule confidence ceiling. Values outside
// (0, 1] fall back to the default cap.
func NewScorerWithCap(cap float64) *Scorer {
	if cap <= 0 || cap > 1 {
		cap = domain.RuleConfidenceCap
	}
	return &Scorer{taxonomy: domain.DocumentTaxonomy, confidenceCap: cap}
}

// Score returns the per-type keyword/pattern score for text. Scores are
// transient; callers should not persist them.
func (s *Scorer) Score(text string) map[domain.DocumentType]int {
	lowered := strings.ToLower(text)
	scores := make(map[domain.DocumentType]int, len(s.taxonomy))
	for _, entry := range s.taxonomy {
		score := 0
		for _, keyword := range entry.Keywords {
			score += keywordWeight * strings.Count(lowered, keyword)
		}
		for _, pattern := range entry.Patterns {
			score += patternWeight * len(pattern.FindAllStringIndex(lowered, -1))
		}
		scores[entry.Type] = score
	}
	return scores
}

// Classify picks the winning type. Ties break toward the first-declared
// taxonomy entry; an all-zero score falls back to the catch-all category at a
// low fixed confidence. Deterministic for identical input.
func (s *Scorer) Classify(text string) (domain.DocumentType, float64, map[domain.DocumentType]int) {
	scores := s.Score(text)

	total := 0
	winner := domain.TypeDefault
	winning := 0
	for _, entry := range s.taxonomy {
		score := scores[entry.Type]
		total += score
		if score > winning {
			winning = score
			winner = entry.Type
		}
	}

	if total == 0 {
		return domain.TypeDefault, domain.DefaultRuleConfidence, scores
	}

	confidence := float64(winning) / float64(total)
	if confidence > s.confidenceCap {
		confidence = s.confidenceCap
	}
	return winner, confidence, scores
}

// Reasoning renders the score table for the result's reasoning field.
func Reasoning(scores map[domain.DocumentType]int) string {
	types := make([]string, 0, len(scores))
	for t, score := range scores {
		if score > 0 {
			types = append(types, fmt.Sprintf("%s=%d", t, score))
		}
	}
	if len(types) == 0 {
		return "keyword/pattern scoring: no matches, defaulted to catch-all category"
	}
	sort.Strings(types)
	return "keyword/pattern scoring: " + strings.Join(types, " ")
}
