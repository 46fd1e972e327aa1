package timeline

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/vitals"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.Local)
}

func testReport(ts time.Time) *report.Record {
	return &report.Record{
		ID:           uuid.New(),
		OriginalName: "cbc.pdf",
		ReportType:   report.TypeBloodTest,
		TestDate:     ts,
	}
}

func highBP() *vitals.BloodPressure {
	sys, dia := 150, 95
	return &vitals.BloodPressure{Systolic: &sys, Diastolic: &dia}
}

func testVitals(ts time.Time) *vitals.Record {
	return &vitals.Record{
		ID:         uuid.New(),
		HeartRate:  &vitals.Measurement{Value: 72},
		RecordedAt: ts,
	}
}

func TestNormalizeReport(t *testing.T) {
	lab := "City Lab"
	r := testReport(day(2024, 1, 5))
	r.LabName = &lab

	item, _, err := NormalizeReport(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Kind != KindReport {
		t.Errorf("kind = %s", item.Kind)
	}
	if item.Title != "cbc.pdf" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Description != "Blood Test from City Lab" {
		t.Errorf("description = %q", item.Description)
	}
	if item.Category != "blood-test" {
		t.Errorf("category = %q", item.Category)
	}
	if item.Status != StatusNormal {
		t.Errorf("status = %s", item.Status)
	}
}

func TestNormalizeReport_AttentionFromFindings(t *testing.T) {
	r := testReport(day(2024, 1, 5))
	r.Insight = &report.Insight{
		KeyFindings: []report.KeyFinding{{Parameter: "WBC", Status: report.SeverityCritical}},
	}
	item, _, err := NormalizeReport(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != StatusAttention {
		t.Errorf("expected attention for critical finding, got %s", item.Status)
	}
}

func TestNormalizeReport_MalformedDate(t *testing.T) {
	r := testReport(time.Time{})
	if _, _, err := NormalizeReport(r); err != ErrMalformedRecord {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestNormalizeReport_ClampDiagnostic(t *testing.T) {
	r := testReport(day(2024, 1, 5))
	r.Insight = &report.Insight{Confidence: 140}
	_, diag, err := NormalizeReport(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.ClampedValues != 1 {
		t.Errorf("expected out-of-range confidence to be flagged, got %+v", diag)
	}
}

func TestNormalizeVitals(t *testing.T) {
	v := testVitals(day(2024, 1, 5))
	v.BloodPressure = highBP()

	item, _, err := NormalizeVitals(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Title != "Health Vitals" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Category != CategoryVitals {
		t.Errorf("category = %q", item.Category)
	}
	if item.Status != StatusAttention {
		t.Errorf("expected attention for high BP, got %s", item.Status)
	}
	if item.Description != "BP: 150/95, HR: 72" {
		t.Errorf("description = %q", item.Description)
	}
}

func TestNormalizeVitals_EmptyDescription(t *testing.T) {
	v := &vitals.Record{ID: uuid.New(), RecordedAt: day(2024, 1, 5)}
	item, _, err := NormalizeVitals(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Description != vitals.DefaultDescription {
		t.Errorf("description = %q", item.Description)
	}
	if item.Status != StatusNormal {
		t.Errorf("status = %s", item.Status)
	}
}

func TestBuild_CountPreservation(t *testing.T) {
	reports := []*report.Record{testReport(day(2024, 1, 1)), testReport(day(2024, 1, 2))}
	vits := []*vitals.Record{testVitals(day(2024, 1, 3))}

	tl := Build(reports, vits, OrderNewest)
	if len(tl.Items) != 3 {
		t.Errorf("expected every well-formed record in the output, got %d", len(tl.Items))
	}
	if tl.Diagnostics.MalformedRecords != 0 {
		t.Errorf("unexpected diagnostics: %+v", tl.Diagnostics)
	}
}

func TestBuild_SkipsMalformed(t *testing.T) {
	reports := []*report.Record{testReport(day(2024, 1, 1)), testReport(time.Time{})}
	vits := []*vitals.Record{testVitals(time.Time{})}

	tl := Build(reports, vits, OrderNewest)
	if len(tl.Items) != 1 {
		t.Errorf("expected malformed records skipped, got %d items", len(tl.Items))
	}
	if tl.Diagnostics.MalformedRecords != 2 {
		t.Errorf("expected 2 malformed diagnostics, got %d", tl.Diagnostics.MalformedRecords)
	}
}

func TestBuild_NewestFirst(t *testing.T) {
	reports := []*report.Record{testReport(day(2024, 1, 1)), testReport(day(2024, 1, 10))}
	tl := Build(reports, nil, OrderNewest)
	if !tl.Items[0].Timestamp.After(tl.Items[1].Timestamp) {
		t.Error("expected newest first")
	}

	tl = Build(reports, nil, OrderOldest)
	if !tl.Items[0].Timestamp.Before(tl.Items[1].Timestamp) {
		t.Error("expected oldest first")
	}
}

func TestBuild_TieBreakReportsBeforeVitals(t *testing.T) {
	ts := day(2024, 1, 5)
	tl := Build([]*report.Record{testReport(ts)}, []*vitals.Record{testVitals(ts)}, OrderNewest)
	if tl.Items[0].Kind != KindReport || tl.Items[1].Kind != KindVitals {
		t.Errorf("expected reports before vitals on equal timestamps, got %s, %s",
			tl.Items[0].Kind, tl.Items[1].Kind)
	}

	// The tie-break holds in both directions; only the bucket order flips.
	tl = Build([]*report.Record{testReport(ts)}, []*vitals.Record{testVitals(ts)}, OrderOldest)
	if tl.Items[0].Kind != KindReport || tl.Items[1].Kind != KindVitals {
		t.Errorf("tie order must be re-evaluated per build, got %s, %s",
			tl.Items[0].Kind, tl.Items[1].Kind)
	}
}

func TestSort_Idempotent(t *testing.T) {
	items := Build([]*report.Record{
		testReport(day(2024, 1, 3)), testReport(day(2024, 1, 1)), testReport(day(2024, 1, 2)),
	}, nil, OrderNewest).Items

	again := Sort(items, OrderNewest)
	for i := range items {
		if items[i].ID != again[i].ID {
			t.Fatalf("re-sorting a sorted sequence changed position %d", i)
		}
	}
}

func TestSort_ReversalWithoutTies(t *testing.T) {
	reports := []*report.Record{
		testReport(day(2024, 1, 3)), testReport(day(2024, 1, 1)), testReport(day(2024, 1, 2)),
	}
	newest := Build(reports, nil, OrderNewest).Items
	oldest := Build(reports, nil, OrderOldest).Items
	for i := range newest {
		if newest[i].ID != oldest[len(oldest)-1-i].ID {
			t.Fatalf("oldest order is not the reverse of newest at %d", i)
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := []Item{
		{ID: uuid.New(), Timestamp: day(2024, 1, 1)},
		{ID: uuid.New(), Timestamp: day(2024, 1, 2)},
	}
	first := items[0].ID
	Sort(items, OrderNewest)
	if items[0].ID != first {
		t.Error("Sort must not reorder its input")
	}
}

func TestGroupByDay(t *testing.T) {
	reports := []*report.Record{
		testReport(time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)),
		testReport(time.Date(2024, 1, 5, 18, 0, 0, 0, time.Local)),
		testReport(day(2024, 1, 7)),
	}
	tl := Build(reports, nil, OrderNewest)
	if len(tl.Groups) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(tl.Groups))
	}
	if tl.Groups[0].Date != "2024-01-07" || tl.Groups[1].Date != "2024-01-05" {
		t.Errorf("bucket order should follow sort order: %s, %s", tl.Groups[0].Date, tl.Groups[1].Date)
	}
	if len(tl.Groups[1].Items) != 2 {
		t.Errorf("expected both same-day records in one bucket, got %d", len(tl.Groups[1].Items))
	}
}

func TestBuild_GroupScenario(t *testing.T) {
	r := testReport(day(2024, 1, 5))
	r.Insight = &report.Insight{
		KeyFindings: []report.KeyFinding{{Parameter: "WBC", Status: report.SeverityCritical}},
	}
	v := testVitals(day(2024, 1, 5))
	v.BloodPressure = highBP()

	tl := Build([]*report.Record{r}, []*vitals.Record{v}, OrderNewest)
	if len(tl.Groups) != 1 || tl.Groups[0].Date != "2024-01-05" {
		t.Fatalf("expected a single 2024-01-05 bucket, got %+v", tl.Groups)
	}
	if len(tl.Groups[0].Items) != 2 {
		t.Fatalf("expected 2 items in the bucket, got %d", len(tl.Groups[0].Items))
	}
	for _, item := range tl.Groups[0].Items {
		if item.Status != StatusAttention {
			t.Errorf("expected %s item marked attention", item.Kind)
		}
	}

	reportsOnly := FilterByKind(tl.Items, string(KindReport))
	if s := Summarize(reportsOnly); s.AttentionCount != 1 {
		t.Errorf("expected attentionCount 1 over the reports subset, got %d", s.AttentionCount)
	}
}

func TestBuild_EmptyInputs(t *testing.T) {
	tl := Build(nil, nil, OrderNewest)
	if len(tl.Items) != 0 || len(tl.Groups) != 0 {
		t.Error("expected empty timeline")
	}
}
