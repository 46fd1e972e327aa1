// Package dashboard assembles the landing-page view: headline
// statistics, the most recent records from each source, and the
// insights that still need a follow-up.
package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/timeline"
)

// recentCount bounds the per-source record lists on the dashboard.
const recentCount = 5

// Statistics are the headline numbers on the dashboard.
type Statistics struct {
	TotalReports     int `json:"total_reports"`
	TotalVitals      int `json:"total_vitals"`
	ProcessedReports int `json:"processed_reports"`
	CriticalInsights int `json:"critical_insights"`
	AttentionCount   int `json:"attention_count"`
	ProcessingRate   int `json:"processing_rate"`
}

// View is the complete dashboard payload.
type View struct {
	Statistics    Statistics           `json:"statistics"`
	RecentReports []timeline.Item      `json:"recent_reports"`
	RecentVitals  []timeline.Item      `json:"recent_vitals"`
	FollowUps     []FollowUp           `json:"follow_ups"`
	Diagnostics   timeline.Diagnostics `json:"diagnostics"`
}

// FollowUp is a processed report whose insight asks for a follow-up.
type FollowUp struct {
	ReportID     uuid.UUID `json:"report_id"`
	OriginalName string    `json:"original_name"`
	Summary      string    `json:"summary"`
	Timeframe    string    `json:"timeframe,omitempty"`
}

type Service struct {
	timeline *timeline.Service
}

func NewService(tl *timeline.Service) *Service {
	return &Service{timeline: tl}
}

// BuildView aggregates both record sources into the dashboard payload.
func (s *Service) BuildView(ctx context.Context, userID uuid.UUID, lang report.Language) *View {
	tl := s.timeline.BuildForUser(ctx, userID, timeline.OrderNewest)
	summary := timeline.Summarize(tl.Items)

	view := &View{
		Statistics: Statistics{
			TotalReports:     summary.TotalReports,
			TotalVitals:      summary.TotalVitals,
			ProcessedReports: summary.ProcessedCount,
			AttentionCount:   summary.AttentionCount,
			ProcessingRate:   summary.ProcessingRate,
		},
		RecentReports: []timeline.Item{},
		RecentVitals:  []timeline.Item{},
		FollowUps:     []FollowUp{},
		Diagnostics:   tl.Diagnostics,
	}

	for _, item := range tl.Items {
		switch item.Kind {
		case timeline.KindReport:
			if len(view.RecentReports) < recentCount {
				view.RecentReports = append(view.RecentReports, item)
			}
			r, ok := item.Source.(*report.Record)
			if !ok || r.Insight == nil {
				continue
			}
			if hasCriticalFinding(r.Insight) {
				view.Statistics.CriticalInsights++
			}
			if r.Insight.FollowUpRequired {
				f := FollowUp{
					ReportID:     r.ID,
					OriginalName: r.OriginalName,
					Summary:      r.Insight.SummaryText(lang),
				}
				if r.Insight.FollowUpTimeframe != nil {
					f.Timeframe = *r.Insight.FollowUpTimeframe
				}
				view.FollowUps = append(view.FollowUps, f)
			}
		case timeline.KindVitals:
			if len(view.RecentVitals) < recentCount {
				view.RecentVitals = append(view.RecentVitals, item)
			}
		}
	}
	return view
}

func hasCriticalFinding(i *report.Insight) bool {
	for _, f := range i.KeyFindings {
		if f.Status == report.SeverityCritical {
			return true
		}
	}
	return false
}
