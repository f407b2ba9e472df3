package scoring

import "dealdesk/internal/domain"

// RequiresReview reports whether a human must approve the extraction before
// it may populate downstream records. Any single trigger is sufficient; the
// gate fails closed. Callers must re-evaluate on every read — upstream data
// (a flag added by feedback, say) can change the outcome, so the decision is
// never cached.
func RequiresReview(result *domain.AnalysisResult) bool {
	if OverallConfidence(result) < ReviewThreshold {
		return true
	}
	for _, f := range result.Flags {
		if f.Severity == domain.SeverityError || f.Severity == domain.SeverityCritical {
			return true
		}
	}
	for _, v := range result.Validations {
		if v.Status == domain.ValidationInvalid {
			return true
		}
	}
	for _, m := range result.Mappings {
		if m.RequiresReview {
			return true
		}
	}
	return result.Status == domain.StatusRequiresReview
}

// ReviewTriggers names the individual gate triggers that fired. The engine's
// own requires_review status and the locally derived triggers can disagree;
// both are preserved here so the discrepancy is visible to the reviewer
// instead of one signal silently winning.
type ReviewTriggers struct {
	LowConfidence     bool `json:"low_confidence"`
	SevereFlags       bool `json:"severe_flags"`
	InvalidFields     bool `json:"invalid_fields"`
	UnreviewedMapping bool `json:"unreviewed_mapping"`
	EngineStatus      bool `json:"engine_status"`
}

// Evaluate returns the full trigger breakdown for a result.
func Evaluate(result *domain.AnalysisResult) ReviewTriggers {
	t := ReviewTriggers{
		LowConfidence: OverallConfidence(result) < ReviewThreshold,
		EngineStatus:  result.Status == domain.StatusRequiresReview,
	}
	for _, f := range result.Flags {
		if f.Severity == domain.SeverityError || f.Severity == domain.SeverityCritical {
			t.SevereFlags = true
			break
		}
	}
	for _, v := range result.Validations {
		if v.Status == domain.ValidationInvalid {
			t.InvalidFields = true
			break
		}
	}
	for _, m := range result.Mappings {
		if m.RequiresReview {
			t.UnreviewedMapping = true
			break
		}
	}
	return t
}

// Any reports whether any trigger fired.
func (t ReviewTriggers) Any() bool {
	return t.LowConfidence || t.SevereFlags || t.InvalidFields || t.UnreviewedMapping || t.EngineStatus
}

// Disagreement reports whether the engine-reported review signal and the
// locally derived triggers point in different directions.
func (t ReviewTriggers) Disagreement() bool {
	local := t.LowConfidence || t.SevereFlags || t.InvalidFields || t.UnreviewedMapping
	return local != t.EngineStatus
}
