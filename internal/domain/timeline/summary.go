package timeline

import (
	"math"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/vitals"
)

// Summary holds roll-up statistics over a (possibly filtered) item
// collection. It is a value object built fresh on every call.
type Summary struct {
	Total          int            `json:"total"`
	TotalReports   int            `json:"total_reports"`
	TotalVitals    int            `json:"total_vitals"`
	ByCategory     map[string]int `json:"by_category"`
	AttentionCount int            `json:"attention_count"`
	FollowUpCount  int            `json:"follow_up_count"`
	NormalCount    int            `json:"normal_count"`
	ProcessedCount int            `json:"processed_count"`
	ProcessingRate int            `json:"processing_rate"`
}

// Summarize computes statistics in a single pass. ProcessingRate is the
// rounded percentage of processed reports, defined as 0 when there are
// no reports.
func Summarize(items []Item) Summary {
	s := Summary{ByCategory: map[string]int{}}
	for _, item := range items {
		s.Total++
		s.ByCategory[item.Category]++
		if item.Status == StatusAttention {
			s.AttentionCount++
		}

		switch src := item.Source.(type) {
		case *report.Record:
			s.TotalReports++
			if src.Processed {
				s.ProcessedCount++
			}
			if src.Insight != nil {
				if src.Insight.FollowUpRequired {
					s.FollowUpCount++
				}
				if src.Insight.AllFindingsNormal() {
					s.NormalCount++
				}
			}
		case *vitals.Record:
			s.TotalVitals++
			if item.Status == StatusNormal {
				s.NormalCount++
			}
		}
	}

	if s.TotalReports > 0 {
		s.ProcessingRate = int(math.Round(float64(s.ProcessedCount) / float64(s.TotalReports) * 100))
	}
	return s
}
