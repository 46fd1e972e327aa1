package timeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/vitals"
)

// ReportSource supplies a user's full report collection.
type ReportSource interface {
	ListAllReports(ctx context.Context, userID uuid.UUID) ([]*report.Record, error)
}

// VitalsSource supplies a user's full vitals history.
type VitalsSource interface {
	ListAllEntries(ctx context.Context, userID uuid.UUID) ([]*vitals.Record, error)
}

type Service struct {
	reports ReportSource
	vitals  VitalsSource
}

func NewService(reports ReportSource, vits VitalsSource) *Service {
	return &Service{reports: reports, vitals: vits}
}

// Load fetches both collections concurrently and joins the results. A
// failed fetch yields an empty collection plus a diagnostic note; the
// other source's data is never discarded because of it.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) ([]*report.Record, []*vitals.Record, []string) {
	var (
		wg      sync.WaitGroup
		reports []*report.Record
		vits    []*vitals.Record
		repErr  error
		vitErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reports, repErr = s.reports.ListAllReports(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		vits, vitErr = s.vitals.ListAllEntries(ctx, userID)
	}()
	wg.Wait()

	var notes []string
	if repErr != nil {
		log.Warn().Err(repErr).Str("user_id", userID.String()).Msg("report fetch failed, continuing with vitals only")
		reports = nil
		notes = append(notes, "reports unavailable")
	}
	if vitErr != nil {
		log.Warn().Err(vitErr).Str("user_id", userID.String()).Msg("vitals fetch failed, continuing with reports only")
		vits = nil
		notes = append(notes, "vitals unavailable")
	}
	return reports, vits, notes
}

// BuildForUser loads both sources and assembles the grouped timeline.
func (s *Service) BuildForUser(ctx context.Context, userID uuid.UUID, order Order) *Timeline {
	reports, vits, notes := s.Load(ctx, userID)
	t := Build(reports, vits, order)
	t.Diagnostics.Notes = append(t.Diagnostics.Notes, notes...)
	return t
}
