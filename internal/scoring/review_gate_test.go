package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealdesk/internal/domain"
	"dealdesk/internal/scoring"
)

func cleanResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		AnalysisID: "an-1",
		Status:     domain.StatusCompleted,
		Confidence: 95,
	}
}

func TestRequiresReview_CleanResultPasses(t *testing.T) {
	assert.False(t, scoring.RequiresReview(cleanResult()))
}

func TestRequiresReview_LowConfidence(t *testing.T) {
	result := cleanResult()
	result.Confidence = 79

	assert.True(t, scoring.RequiresReview(result))
}

func TestRequiresReview_ThresholdIsExclusive(t *testing.T) {
	result := cleanResult()
	result.Confidence = 80

	// Exactly at threshold does not trigger; strictly below does.
	assert.False(t, scoring.RequiresReview(result))
}

func TestRequiresReview_SevereFlagOverridesConfidence(t *testing.T) {
	for _, sev := range []domain.FlagSeverity{domain.SeverityError, domain.SeverityCritical} {
		result := cleanResult()
		result.Confidence = 100
		result.Flags = []domain.AnalysisFlag{{Category: domain.FlagCompliance, Severity: sev}}

		assert.True(t, scoring.RequiresReview(result), "severity %s", sev)
	}
}

func TestRequiresReview_InfoWarningFlagsDoNotTrigger(t *testing.T) {
	result := cleanResult()
	result.Flags = []domain.AnalysisFlag{
		{Severity: domain.SeverityInfo},
		{Severity: domain.SeverityWarning},
	}

	assert.False(t, scoring.RequiresReview(result))
}

func TestRequiresReview_InvalidValidation(t *testing.T) {
	result := cleanResult()
	result.Validations = []domain.ValidationResult{
		{Field: "deal_value", Status: domain.ValidationInvalid, Confidence: 99},
	}

	assert.True(t, scoring.RequiresReview(result))
}

func TestRequiresReview_MappingFlagged(t *testing.T) {
	result := cleanResult()
	result.Mappings = []domain.FieldMapping{
		{SourceField: "total_consideration", TargetField: "deal_value", RequiresReview: true},
	}

	assert.True(t, scoring.RequiresReview(result))
}

func TestRequiresReview_EngineStatus(t *testing.T) {
	result := cleanResult()
	result.Status = domain.StatusRequiresReview

	assert.True(t, scoring.RequiresReview(result))
}

func TestEvaluate_TriggerBreakdown(t *testing.T) {
	result := cleanResult()
	result.Confidence = 50
	result.Status = domain.StatusRequiresReview
	result.Flags = []domain.AnalysisFlag{{Severity: domain.SeverityCritical}}

	triggers := scoring.Evaluate(result)

	assert.True(t, triggers.LowConfidence)
	assert.True(t, triggers.SevereFlags)
	assert.False(t, triggers.InvalidFields)
	assert.False(t, triggers.UnreviewedMapping)
	assert.True(t, triggers.EngineStatus)
	assert.True(t, triggers.Any())
}

func TestEvaluate_Disagreement(t *testing.T) {
	// Engine says review, local triggers are all clean.
	result := cleanResult()
	result.Status = domain.StatusRequiresReview
	assert.True(t, scoring.Evaluate(result).Disagreement())

	// Local trigger fires but engine reported completed.
	result = cleanResult()
	result.Confidence = 10
	assert.True(t, scoring.Evaluate(result).Disagreement())

	// Both agree.
	result = cleanResult()
	assert.False(t, scoring.Evaluate(result).Disagreement())

	result = cleanResult()
	result.Confidence = 10
	result.Status = domain.StatusRequiresReview
	assert.False(t, scoring.Evaluate(result).Disagreement())
}
