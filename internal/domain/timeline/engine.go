// Package timeline merges medical reports and vital-sign entries into a
// single chronological view. All functions here are pure: they take
// already-fetched collections, never perform I/O, and return newly
// constructed values on every call.
package timeline

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/vitals"
)

// Kind discriminates the source of a timeline item.
type Kind string

const (
	KindReport Kind = "report"
	KindVitals Kind = "vitals"
)

// Status is the derived health flag of an item.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusAttention Status = "attention"
)

// Order selects the sort direction of the timeline.
type Order string

const (
	OrderNewest Order = "newest"
	OrderOldest Order = "oldest"
)

// ParseOrder defaults to newest-first for unknown values.
func ParseOrder(s string) Order {
	if Order(s) == OrderOldest {
		return OrderOldest
	}
	return OrderNewest
}

// CategoryVitals is the fixed category tag for vitals items.
const CategoryVitals = "vitals"

// ErrMalformedRecord marks a raw record whose date cannot be used.
var ErrMalformedRecord = errors.New("malformed record")

// Item is the uniform view of one record. Items are immutable after
// construction; re-sorting builds new sequences, never mutates.
// Source holds the originating raw record for callers that need the
// full payload.
type Item struct {
	ID          uuid.UUID   `json:"id"`
	Kind        Kind        `json:"kind"`
	Timestamp   time.Time   `json:"timestamp"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Status      Status      `json:"status"`
	Alerts      []string    `json:"alerts,omitempty"`
	Source      interface{} `json:"-"`
}

// Diagnostics collects non-fatal data issues found during an
// aggregation pass. Malformed records are skipped, out-of-range values
// clamped; neither aborts the build.
type Diagnostics struct {
	MalformedRecords int      `json:"malformed_records"`
	ClampedValues    int      `json:"clamped_values"`
	Notes            []string `json:"notes,omitempty"`
}

func (d *Diagnostics) merge(other Diagnostics) {
	d.MalformedRecords += other.MalformedRecords
	d.ClampedValues += other.ClampedValues
	d.Notes = append(d.Notes, other.Notes...)
}

// Group is one calendar day's worth of items.
type Group struct {
	Date  string `json:"date"` // YYYY-MM-DD in the process-local zone
	Items []Item `json:"items"`
}

// Timeline is the fully built, sorted and grouped view.
type Timeline struct {
	Order       Order       `json:"order"`
	Items       []Item      `json:"items"`
	Groups      []Group     `json:"groups"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// NormalizeReport converts a report record into a timeline item. A zero
// test date fails with ErrMalformedRecord.
func NormalizeReport(r *report.Record) (Item, Diagnostics, error) {
	var diag Diagnostics
	if r == nil || r.TestDate.IsZero() {
		return Item{}, diag, ErrMalformedRecord
	}

	desc := r.ReportType.Label()
	if r.LabName != nil && *r.LabName != "" {
		desc += " from " + *r.LabName
	}

	status := StatusNormal
	if r.Insight != nil {
		if r.Insight.NeedsAttention() {
			status = StatusAttention
		}
		if _, clamped := r.Insight.ClampConfidence(); clamped {
			diag.ClampedValues++
		}
	}

	return Item{
		ID:          r.ID,
		Kind:        KindReport,
		Timestamp:   r.TestDate,
		Title:       r.OriginalName,
		Description: desc,
		Category:    string(r.ReportType),
		Status:      status,
		Source:      r,
	}, diag, nil
}

// NormalizeVitals converts a vitals entry into a timeline item,
// reclassifying its readings rather than trusting a stored alert list.
func NormalizeVitals(v *vitals.Record) (Item, Diagnostics, error) {
	var diag Diagnostics
	if v == nil || v.RecordedAt.IsZero() {
		return Item{}, diag, ErrMalformedRecord
	}

	alerts := vitals.ComputeAlerts(v)
	status := StatusNormal
	if len(alerts) > 0 {
		status = StatusAttention
	}
	if v.BMI != nil && *v.BMI < 0 {
		diag.ClampedValues++
	}

	return Item{
		ID:          v.ID,
		Kind:        KindVitals,
		Timestamp:   v.RecordedAt,
		Title:       vitals.Title,
		Description: v.Description(),
		Category:    CategoryVitals,
		Status:      status,
		Alerts:      alerts,
		Source:      v,
	}, diag, nil
}

// Build normalizes, classifies, merges, sorts and groups both record
// collections. Reports precede vitals before the stable sort, so items
// sharing a timestamp keep that relative order. Records with unusable
// dates are counted in the diagnostics and skipped; the build itself
// never fails.
func Build(reports []*report.Record, vits []*vitals.Record, order Order) *Timeline {
	t := &Timeline{Order: order}

	items := make([]Item, 0, len(reports)+len(vits))
	for _, r := range reports {
		item, diag, err := NormalizeReport(r)
		t.Diagnostics.merge(diag)
		if err != nil {
			t.Diagnostics.MalformedRecords++
			continue
		}
		items = append(items, item)
	}
	for _, v := range vits {
		item, diag, err := NormalizeVitals(v)
		t.Diagnostics.merge(diag)
		if err != nil {
			t.Diagnostics.MalformedRecords++
			continue
		}
		items = append(items, item)
	}

	t.Items = Sort(items, order)
	t.Groups = GroupByDay(t.Items)
	return t
}

// Sort returns a new slice ordered by timestamp. The sort is stable, so
// equal timestamps keep their input order.
func Sort(items []Item, order Order) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderOldest {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// GroupByDay partitions an already-sorted sequence into calendar-day
// buckets in the process-local zone. Bucket order follows item order.
func GroupByDay(items []Item) []Group {
	groups := []Group{}
	for _, item := range items {
		date := item.Timestamp.Local().Format("2006-01-02")
		if n := len(groups); n > 0 && groups[n-1].Date == date {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, Group{Date: date, Items: []Item{item}})
	}
	return groups
}
