package domain

// AnalysisCategory selects the extraction profile the engine applies to a file.
type AnalysisCategory string

const (
	CategoryDealIntake         AnalysisCategory = "deal_intake"
	CategoryFinancialStatement AnalysisCategory = "financial_statement"
	CategoryLegalDocument      AnalysisCategory = "legal_document"
	CategoryKYCDocument        AnalysisCategory = "kyc_document"
	CategoryComprehensive      AnalysisCategory = "comprehensive"
)

// ValidCategories is the closed set of analysis categories accepted at submission.
var ValidCategories = map[AnalysisCategory]bool{
	CategoryDealIntake:         true,
	CategoryFinancialStatement: true,
	CategoryLegalDocument:      true,
	CategoryKYCDocument:        true,
	CategoryComprehensive:      true,
}

// PriorityLevel orders engine-side processing of submitted files.
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "low"
	PriorityNormal PriorityLevel = "normal"
	PriorityHigh   PriorityLevel = "high"
	PriorityUrgent PriorityLevel = "urgent"
)

// AnalysisStatus is the lifecycle state of one file's analysis.
type AnalysisStatus string

const (
	StatusPending        AnalysisStatus = "pending"
	StatusProcessing     AnalysisStatus = "processing"
	StatusCompleted      AnalysisStatus = "completed"
	StatusFailed         AnalysisStatus = "failed"
	StatusRequiresReview AnalysisStatus = "requires_review"
)

// statusRank encodes forward-only ordering of analysis statuses. Terminal
// states share a rank so feedback can move a result between them.
var statusRank = map[AnalysisStatus]int{
	StatusPending:        0,
	StatusProcessing:     1,
	StatusCompleted:      2,
	StatusFailed:         2,
	StatusRequiresReview: 2,
}

// CanTransition reports whether a file may move from one status to another.
// Transitions only move forward: pending → processing → a terminal state.
// Feedback may re-set a terminal state but never returns a file to pending
// or processing.
func CanTransition(from, to AnalysisStatus) bool {
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	if fr == tr {
		return fr == 2
	}
	return tr > fr
}

// IsTerminal reports whether a status is a terminal per-file state.
func (s AnalysisStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRequiresReview
}

// ValidationStatus classifies a single per-field validation outcome.
type ValidationStatus string

const (
	ValidationValid          ValidationStatus = "valid"
	ValidationInvalid        ValidationStatus = "invalid"
	ValidationWarning        ValidationStatus = "warning"
	ValidationRequiresReview ValidationStatus = "requires_review"
)

// FlagCategory groups analysis flags by concern.
type FlagCategory string

const (
	FlagDataQuality   FlagCategory = "data_quality"
	FlagCompliance    FlagCategory = "compliance"
	FlagSecurity      FlagCategory = "security"
	FlagBusinessLogic FlagCategory = "business_logic"
	FlagFormatting    FlagCategory = "formatting"
)

// FlagSeverity ranks analysis flags.
type FlagSeverity string

const (
	SeverityInfo     FlagSeverity = "info"
	SeverityWarning  FlagSeverity = "warning"
	SeverityError    FlagSeverity = "error"
	SeverityCritical FlagSeverity = "critical"
)
