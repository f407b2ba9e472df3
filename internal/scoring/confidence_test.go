package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealdesk/internal/domain"
	"dealdesk/internal/scoring"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, scoring.Clamp(-5))
	assert.Equal(t, 100.0, scoring.Clamp(150))
	assert.Equal(t, 42.5, scoring.Clamp(42.5))
}

func TestOverallConfidence_MeanOfMeans(t *testing.T) {
	result := &domain.AnalysisResult{
		Confidence: 80,
		Validations: []domain.ValidationResult{
			{Field: "deal_value", Confidence: 90},
			{Field: "currency", Confidence: 70},
		},
	}

	// (80 + mean(90,70)) / 2 = 80
	assert.Equal(t, 80.0, scoring.OverallConfidence(result))
}

func TestOverallConfidence_NoValidations_Passthrough(t *testing.T) {
	result := &domain.AnalysisResult{Confidence: 63.5}
	assert.Equal(t, 63.5, scoring.OverallConfidence(result))
}

func TestOverallConfidence_ZeroConfidenceValidationsIgnored(t *testing.T) {
	result := &domain.AnalysisResult{
		Confidence: 91,
		Validations: []domain.ValidationResult{
			{Field: "seller", Confidence: 0},
			{Field: "buyer", Confidence: 0},
		},
	}

	// Validations without a positive confidence must not drag the score down.
	assert.Equal(t, 91.0, scoring.OverallConfidence(result))
}

func TestOverallConfidence_ClampsOutOfRangeInputs(t *testing.T) {
	result := &domain.AnalysisResult{
		Confidence: 140,
		Validations: []domain.ValidationResult{
			{Field: "deal_value", Confidence: 120},
		},
	}

	assert.Equal(t, 100.0, scoring.OverallConfidence(result))

	result = &domain.AnalysisResult{Confidence: -20}
	assert.Equal(t, 0.0, scoring.OverallConfidence(result))
}

func TestOverallConfidence_FieldMeanPullsDown(t *testing.T) {
	result := &domain.AnalysisResult{
		Confidence: 95,
		Validations: []domain.ValidationResult{
			{Field: "ebitda", Confidence: 40},
		},
	}

	// (95 + 40) / 2 = 67.5 — a globally confident engine cannot mask a weak field.
	assert.Equal(t, 67.5, scoring.OverallConfidence(result))
}
