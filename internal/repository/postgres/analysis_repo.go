package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"dealdesk/internal/domain"
	"dealdesk/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, rec *domain.AnalysisRecord) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO analyses (
		id, analysis_id, session_id, file_id, file_name, category,
		status, confidence, quality_score, requires_review,
		result, raw_key, reviewed_by, reviewed_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14,
		$15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.AnalysisID, rec.SessionID, rec.FileID, rec.FileName, rec.Category,
		rec.Status, rec.Confidence, rec.QualityScore, rec.RequiresReview,
		rec.Result, rec.RawKey, rec.ReviewedBy, rec.ReviewedAt,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "analysis_id") {
			return fmt.Errorf("analysisRepo.Create: analysis %s already recorded: %w", rec.AnalysisID, err)
		}
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByAnalysisID(ctx context.Context, analysisID string) (*domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM analyses WHERE analysis_id = $1", analysisID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByAnalysisID: %w", err)
	}
	return &rec, nil
}

func (r *analysisRepo) List(ctx context.Context, offset, limit int) ([]domain.AnalysisRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM analyses"); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List count: %w", err)
	}

	var recs []domain.AnalysisRecord
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM analyses ORDER BY created_at DESC OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *analysisRepo) UpdateReview(ctx context.Context, rec *domain.AnalysisRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET requires_review = $1, reviewed_by = $2, reviewed_at = $3, updated_at = $4
		 WHERE analysis_id = $5`,
		rec.RequiresReview, rec.ReviewedBy, rec.ReviewedAt, rec.UpdatedAt, rec.AnalysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.UpdateReview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) ReplaceResult(ctx context.Context, rec *domain.AnalysisRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET status = $1, confidence = $2, quality_score = $3,
		 requires_review = $4, result = $5, reviewed_by = $6, reviewed_at = $7, updated_at = $8
		 WHERE analysis_id = $9`,
		rec.Status, rec.Confidence, rec.QualityScore,
		rec.RequiresReview, rec.Result, rec.ReviewedBy, rec.ReviewedAt, rec.UpdatedAt,
		rec.AnalysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.ReplaceResult: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}
