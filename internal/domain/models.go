package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileDescriptor is the file metadata handed to us by the ingestion layer.
// Upload, scanning, and storage happen upstream; this core only sees the
// descriptor.
type FileDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// AnalysisRequest is the immutable submission sent to the analysis engine.
type AnalysisRequest struct {
	FileID   string           `json:"file_id"`
	FileName string           `json:"file_name"`
	FileType string           `json:"file_type"`
	FileSize int64            `json:"file_size"`
	Category AnalysisCategory `json:"category"`
	Priority PriorityLevel    `json:"priority,omitempty"`
	ClientID string           `json:"client_id,omitempty"`
	DealID   string           `json:"deal_id,omitempty"`
}

// Validate checks the request shape before any network call is made.
func (r *AnalysisRequest) Validate() error {
	if r.FileID == "" {
		return fmt.Errorf("%w: missing file id", ErrRequestInvalid)
	}
	if r.FileName == "" {
		return fmt.Errorf("%w: missing file name", ErrRequestInvalid)
	}
	if r.FileSize <= 0 {
		return fmt.Errorf("%w: file size must be positive", ErrRequestInvalid)
	}
	if !ValidCategories[r.Category] {
		return fmt.Errorf("%w: unknown analysis category %q", ErrRequestInvalid, r.Category)
	}
	return nil
}

// PartyInfo describes the seller or buyer side of a deal.
type PartyInfo struct {
	Name         string `json:"name,omitempty"`
	EntityType   string `json:"entity_type,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
	Ownership    string `json:"ownership,omitempty"`
}

// CompanyInfo describes the target company.
type CompanyInfo struct {
	Name         string `json:"name,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
	Employees    *int64 `json:"employees,omitempty"`
	Website      string `json:"website,omitempty"`
}

// AdvisorInfo describes a financial or legal advisor on the deal.
type AdvisorInfo struct {
	Name  string `json:"name,omitempty"`
	Firm  string `json:"firm,omitempty"`
	Role  string `json:"role,omitempty"`
	Party string `json:"party,omitempty"`
}

// ExtractedDealData is the typed projection of the engine's raw payload.
// Monetary and date fields are pointers so an absent field stays absent
// instead of collapsing to a zero value.
type ExtractedDealData struct {
	DealType         string `json:"deal_type,omitempty"`
	PaymentStructure string `json:"payment_structure,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Industry         string `json:"industry,omitempty"`
	Sector           string `json:"sector,omitempty"`

	RegulatoryApprovals []string `json:"regulatory_approvals,omitempty"`
	RiskFactors         []string `json:"risk_factors,omitempty"`

	DealValue       *float64 `json:"deal_value,omitempty"`
	PurchasePrice   *float64 `json:"purchase_price,omitempty"`
	EnterpriseValue *float64 `json:"enterprise_value,omitempty"`
	EquityValue     *float64 `json:"equity_value,omitempty"`
	DebtAmount      *float64 `json:"debt_amount,omitempty"`
	CashAmount      *float64 `json:"cash_amount,omitempty"`
	EarnoutAmount   *float64 `json:"earnout_amount,omitempty"`
	EscrowAmount    *float64 `json:"escrow_amount,omitempty"`
	Revenue         *float64 `json:"revenue,omitempty"`
	EBITDA          *float64 `json:"ebitda,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	EBITDAMultiple  *float64 `json:"ebitda_multiple,omitempty"`
	RevenueMultiple *float64 `json:"revenue_multiple,omitempty"`

	AnnouncedDate       *time.Time `json:"announced_date,omitempty"`
	SignedDate          *time.Time `json:"signed_date,omitempty"`
	EffectiveDate       *time.Time `json:"effective_date,omitempty"`
	ExpectedClosingDate *time.Time `json:"expected_closing_date,omitempty"`

	Seller   *PartyInfo     `json:"seller,omitempty"`
	Buyer    *PartyInfo     `json:"buyer,omitempty"`
	Target   *CompanyInfo   `json:"target,omitempty"`
	Advisors []AdvisorInfo  `json:"advisors,omitempty"`
	Custom   map[string]any `json:"custom_fields,omitempty"`
}

// ValidationResult is one per-field check reported by the engine.
type ValidationResult struct {
	Field          string           `json:"field"`
	Status         ValidationStatus `json:"status"`
	Message        string           `json:"message,omitempty"`
	Confidence     float64          `json:"confidence"`
	SuggestedValue *string          `json:"suggested_value,omitempty"`
}

// FieldMapping is a proposed correspondence between an extracted field and a
// target form field.
type FieldMapping struct {
	ID             string  `json:"id"`
	SourceField    string  `json:"source_field"`
	TargetField    string  `json:"target_field"`
	Confidence     float64 `json:"confidence"`
	Transform      string  `json:"transform,omitempty"`
	RequiresReview bool    `json:"requires_review"`
}

// AnalysisFlag is a categorized issue raised during analysis, independent of
// field-level validation.
type AnalysisFlag struct {
	Category   FlagCategory `json:"category"`
	Severity   FlagSeverity `json:"severity"`
	Message    string       `json:"message"`
	Field      string       `json:"field,omitempty"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// AnalysisResult is the engine's response for a single file. The analysis ID
// is engine-assigned and immutable. Extraction fields are only ever rewritten
// by a feedback-driven replacement; the raw payload is retained for audit.
type AnalysisResult struct {
	AnalysisID   string             `json:"analysis_id"`
	FileID       string             `json:"file_id"`
	Status       AnalysisStatus     `json:"status"`
	Confidence   float64            `json:"confidence"`
	ProcessingMS int64              `json:"processing_ms"`
	Extracted    *ExtractedDealData `json:"extracted_data,omitempty"`
	RawPayload   json.RawMessage    `json:"raw_payload,omitempty"`
	Validations  []ValidationResult `json:"validations,omitempty"`
	Mappings     []FieldMapping     `json:"mappings,omitempty"`
	QualityScore float64            `json:"quality_score"`
	Flags        []AnalysisFlag     `json:"flags,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	ReviewedBy   string             `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty"`
}

// FeedbackPayload carries user corrections and mapping decisions back to the
// engine.
type FeedbackPayload struct {
	Corrections      map[string]any `json:"corrections,omitempty"`
	ApprovedMappings []string       `json:"approvedMappings,omitempty"`
	RejectedMappings []string       `json:"rejectedMappings,omitempty"`
	UserReview       string         `json:"userReview,omitempty"`
}

// IsEmpty reports whether the payload carries nothing worth sending.
func (p *FeedbackPayload) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Corrections) == 0 &&
		len(p.ApprovedMappings) == 0 &&
		len(p.RejectedMappings) == 0 &&
		p.UserReview == ""
}

// SessionFile is one file entry in a working session.
type SessionFile struct {
	File   FileDescriptor  `json:"file"`
	Status AnalysisStatus  `json:"status"`
	Result *AnalysisResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Session is a working set of files uploaded together. Entries are ordered by
// insertion; no two sessions share entries.
type Session struct {
	ID          uuid.UUID     `json:"id"`
	Files       []SessionFile `json:"files"`
	Processing  bool          `json:"processing"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// SessionStats is derived read-only from a session's settled results.
type SessionStats struct {
	TotalFiles        int     `json:"total_files"`
	Analyzed          int     `json:"analyzed"`
	HighConfidence    int     `json:"high_confidence"`
	AverageConfidence float64 `json:"average_confidence"`
}

// AnalysisRecord is the persisted audit row for a terminal analysis.
type AnalysisRecord struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	AnalysisID     string           `db:"analysis_id" json:"analysis_id"`
	SessionID      uuid.UUID        `db:"session_id" json:"session_id"`
	FileID         string           `db:"file_id" json:"file_id"`
	FileName       string           `db:"file_name" json:"file_name"`
	Category       AnalysisCategory `db:"category" json:"category"`
	Status         AnalysisStatus   `db:"status" json:"status"`
	Confidence     float64          `db:"confidence" json:"confidence"`
	QualityScore   float64          `db:"quality_score" json:"quality_score"`
	RequiresReview bool             `db:"requires_review" json:"requires_review"`
	Result         json.RawMessage  `db:"result" json:"result"`
	RawKey         string           `db:"raw_key" json:"raw_key"`
	ReviewedBy     *string          `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt     *time.Time       `db:"reviewed_at" json:"reviewed_at"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}
