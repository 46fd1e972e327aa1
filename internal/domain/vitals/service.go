package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	entries Repository
}

func NewService(entries Repository) *Service {
	return &Service{entries: entries}
}

// CreateEntry validates and stores a vitals entry. Alerts are always
// recomputed server-side; a BMI supplied by the caller is kept only when
// weight and height are not both present to derive it from.
func (s *Service) CreateEntry(ctx context.Context, r *Record) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if err := validateMeasurements(r); err != nil {
		return err
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	s.derive(r)
	return s.entries.Create(ctx, r)
}

// UpdateEntry replaces an entry's measurements and rederives alerts and BMI.
func (s *Service) UpdateEntry(ctx context.Context, r *Record) (*Record, error) {
	existing, err := s.entries.GetByID(ctx, r.UserID, r.ID)
	if err != nil {
		return nil, err
	}
	if err := validateMeasurements(r); err != nil {
		return nil, err
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = existing.RecordedAt
	}
	s.derive(r)
	if err := s.entries.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// validateMeasurements requires at least one reading and rejects a
// blood-pressure pair with only one side recorded, so a missing side can
// never be mistaken for a zero reading downstream.
func validateMeasurements(r *Record) error {
	if !r.HasMeasurements() {
		return fmt.Errorf("at least one measurement is required")
	}
	if bp := r.BloodPressure; bp != nil && (bp.Systolic == nil || bp.Diastolic == nil) {
		return fmt.Errorf("blood_pressure requires both systolic and diastolic")
	}
	return nil
}

func (s *Service) derive(r *Record) {
	r.Alerts = ComputeAlerts(r)
	if bmi, ok := ComputeBMI(r.Weight, r.Height); ok {
		r.BMI = &bmi
	}
	if r.BMI != nil {
		cat := CategoryForBMI(*r.BMI)
		r.BMICategory = &cat
	} else {
		r.BMICategory = nil
	}
}

func (s *Service) GetEntry(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return s.entries.GetByID(ctx, userID, id)
}

func (s *Service) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	return s.entries.Delete(ctx, userID, id)
}

/// ListEntries returns a page of entries within the given period: "7",
// "30" or "90" days back from now, or "all" (also the empty string) for
// the full history.
func (s *Service) ListEntries(ctx context.Context, userID uuid.UUID, period string, limit, offset int) ([]*Record, int, error) {
	since, err := periodStart(period, time.Now())
	if err != nil {
		return nil, 0, err
	}
	return s.entries.ListByUser(ctx, userID, since, limit, offset)
}

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "", "all":
		return time.Time{}, nil
	case "7":
		return now.AddDate(0, 0, -7), nil
	case "30":
		return now.AddDate(0, 0, -30), nil
	case "90":
		return now.AddDate(0, 0, -90), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period: %s", period)
	}
}

// ListAllEntries returns the user's complete vitals history for the
// aggregation engine.
func (s *Service) ListAllEntries(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	return s.entries.ListAllByUser(ctx, userID)
}
