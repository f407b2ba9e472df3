// Package scoring holds the confidence aggregation and review gating rules.
// Both are pure functions over an AnalysisResult; neither mutates its input.
package scoring

import "dealdesk/internal/domain"

// ReviewThreshold is the overall confidence below which human review is
// mandatory. It doubles as the "high confidence" bar for session stats.
const ReviewThreshold = 80.0

// Clamp bounds a score into [0,100].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// OverallConfidence combines the engine's holistic confidence with the
// per-field validation confidences. With no positive validation confidences
// the engine's top-level score passes through unchanged; otherwise the result
// is the mean of the top-level score and the mean of the positive validation
// scores. Averaging the two keeps a globally confident model from masking
// field-level disagreement, and vice versa.
func OverallConfidence(result *domain.AnalysisResult) float64 {
	top := Clamp(result.Confidence)

	var sum float64
	var n int
	for _, v := range result.Validations {
		if v.Confidence > 0 {
			sum += Clamp(v.Confidence)
			n++
		}
	}
	if n == 0 {
		return top
	}

	fieldMean := sum / float64(n)
	return Clamp((top + fieldMean) / 2)
}
