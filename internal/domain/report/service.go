package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	reports Repository
}

func NewService(reports Repository) *Service {
	return &Service{reports: reports}
}

func (s *Service) CreateReport(ctx context.Context, r *Record) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if r.OriginalName == "" {
		return fmt.Errorf("original_name is required")
	}
	if r.ReportType == "" {
		r.ReportType = TypeOther
	}
	if !ValidTypes[r.ReportType] {
		return fmt.Errorf("invalid report_type: %s", r.ReportType)
	}
	if r.TestDate.IsZero() {
		return fmt.Errorf("test_date is required")
	}
	// Uploads arrive unprocessed; the analysis pipeline attaches the
	// insight later.
	r.Processed = false
	r.ProcessedAt = nil
	r.Insight = nil
	return s.reports.Create(ctx, r)
}

func (s *Service) GetReport(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return s.reports.GetByID(ctx, userID, id)
}

func (s *Service) ListReports(ctx context.Context, userID uuid.UUID, f Filter, limit, offset int) ([]*Record, int, error) {
	if f.Category == "all" {
		f.Category = ""
	}
	return s.reports.ListByUser(ctx, userID, f, limit, offset)
}

// ListInsights returns processed reports carrying an insight payload.
func (s *Service) ListInsights(ctx context.Context, userID uuid.UUID, category ReportType, limit, offset int) ([]*Record, int, error) {
	if category == "all" {
		category = ""
	}
	return s.reports.ListByUser(ctx, userID, Filter{Category: category, ProcessedOnly: true}, limit, offset)
}

// AttachInsight stores the analysis result on a report and marks it
// processed. The confidence is stored as received, out of range or not, so
// the original value stays auditable; clamping happens where the insight is
// served. The severity of each finding must be a known value.
func (s *Service) AttachInsight(ctx context.Context, userID, id uuid.UUID, insight *Insight) (*Record, error) {
	if insight == nil {
		return nil, fmt.Errorf("insight is required")
	}
	for _, f := range insight.KeyFindings {
		if !validSeverities[f.Status] {
			return nil, fmt.Errorf("invalid finding status: %s", f.Status)
		}
	}

	r, err := s.reports.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r.Insight = insight
	r.Processed = true
	r.ProcessedAt = &now
	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteReport(ctx context.Context, userID, id uuid.UUID) error {
	return s.reports.Delete(ctx, userID, id)
}

// ListAllReports returns the user's complete report collection for the
// aggregation engine.
func (s *Service) ListAllReports(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	return s.reports.ListAllByUser(ctx, userID)
}
