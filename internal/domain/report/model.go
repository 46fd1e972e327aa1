package report

import (
	"time"

	"github.com/google/uuid"
)

// Language selects which variant of a bilingual field to render.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUrdu    Language = "ur"
)

// ParseLanguage maps a request parameter to a Language, defaulting to English.
func ParseLanguage(s string) Language {
	if s == string(LanguageUrdu) {
		return LanguageUrdu
	}
	return LanguageEnglish
}

// Bilingual holds an English/Urdu text pair. Urdu content is optional; the
// English variant is the fallback.
type Bilingual struct {
	English string `json:"english"`
	Urdu    string `json:"urdu,omitempty"`
}

// Resolve returns the variant for the requested language, falling back to
// English when the Urdu value is absent or empty. Callers supply their own
// placeholder when both variants are empty.
func (b Bilingual) Resolve(lang Language) string {
	if lang == LanguageUrdu && b.Urdu != "" {
		return b.Urdu
	}
	return b.English
}

// BilingualList holds parallel English/Urdu string lists.
type BilingualList struct {
	English []string `json:"english"`
	Urdu    []string `json:"urdu,omitempty"`
}

// Resolve returns the list for the requested language with the same fallback
// rule as Bilingual.Resolve. The result is never nil.
func (l BilingualList) Resolve(lang Language) []string {
	if lang == LanguageUrdu && len(l.Urdu) > 0 {
		return l.Urdu
	}
	if l.English == nil {
		return []string{}
	}
	return l.English
}

// ReportType categorizes an uploaded medical document.
type ReportType string

const (
	TypeBloodTest        ReportType = "blood-test"
	TypeUrineTest        ReportType = "urine-test"
	TypeXRay             ReportType = "x-ray"
	TypeCTScan           ReportType = "ct-scan"
	TypeMRI              ReportType = "mri"
	TypeUltrasound       ReportType = "ultrasound"
	TypeECG              ReportType = "ecg"
	TypePrescription     ReportType = "prescription"
	TypeDischargeSummary ReportType = "discharge-summary"
	TypeConsultation     ReportType = "consultation"
	TypeOther            ReportType = "other"
)

var typeLabels = map[ReportType]string{
	TypeBloodTest:        "Blood Test",
	TypeUrineTest:        "Urine Test",
	TypeXRay:             "X-Ray",
	TypeCTScan:           "CT Scan",
	TypeMRI:              "MRI",
	TypeUltrasound:       "Ultrasound",
	TypeECG:              "ECG",
	TypePrescription:     "Prescription",
	TypeDischargeSummary: "Discharge Summary",
	TypeConsultation:     "Consultation",
	TypeOther:            "Other",
}

// ValidTypes enumerates every accepted report type.
var ValidTypes = map[ReportType]bool{
	TypeBloodTest: true, TypeUrineTest: true, TypeXRay: true, TypeCTScan: true,
	TypeMRI: true, TypeUltrasound: true, TypeECG: true, TypePrescription: true,
	TypeDischargeSummary: true, TypeConsultation: true, TypeOther: true,
}

// Label returns the human-readable label for the report type. Unknown types
// render as "Report".
func (t ReportType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Report"
}

// Finding severity levels attached to individual report parameters.
const (
	SeverityNormal   = "normal"
	SeverityAbnormal = "abnormal"
	SeverityCritical = "critical"
	SeverityLow      = "low"
	SeverityHigh     = "high"
)

var validSeverities = map[string]bool{
	SeverityNormal: true, SeverityAbnormal: true, SeverityCritical: true,
	SeverityLow: true, SeverityHigh: true,
}

// KeyFinding is a single analyzed parameter from a report.
type KeyFinding struct {
	Parameter    string    `json:"parameter"`
	Value        string    `json:"value,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	NormalRange  string    `json:"normal_range,omitempty"`
	Status       string    `json:"status"`
	Significance Bilingual `json:"significance,omitempty"`
}

// NoSummaryPlaceholder is rendered when an insight carries no summary text
// in either language.
const NoSummaryPlaceholder = "No summary available"

// Insight is the AI-generated analysis attached to a processed report. The
// content arrives precomputed from the analysis pipeline; this service only
// stores and classifies it.
type Insight struct {
	Summary           Bilingual     `json:"summary"`
	KeyFindings       []KeyFinding  `json:"key_findings"`
	Recommendations   BilingualList `json:"recommendations"`
	DoctorQuestions   BilingualList `json:"doctor_questions"`
	RiskFactors       []string      `json:"risk_factors,omitempty"`
	FollowUpRequired  bool          `json:"follow_up_required"`
	FollowUpTimeframe *string       `json:"follow_up_timeframe,omitempty"`
	Confidence        int           `json:"confidence"`
}

// SummaryText resolves the summary for the given language, substituting the
// placeholder when both variants are empty.
func (i *Insight) SummaryText(lang Language) string {
	s := i.Summary.Resolve(lang)
	if s == "" {
		return NoSummaryPlaceholder
	}
	return s
}

// NeedsAttention reports whether any key finding is abnormal or critical.
func (i *Insight) NeedsAttention() bool {
	for _, f := range i.KeyFindings {
		if f.Status == SeverityAbnormal || f.Status == SeverityCritical {
			return true
		}
	}
	return false
}

// AllFindingsNormal reports whether the insight has findings and every one of
// them is normal. An insight without findings is indeterminate, not normal.
func (i *Insight) AllFindingsNormal() bool {
	if len(i.KeyFindings) == 0 {
		return false
	}
	for _, f := range i.KeyFindings {
		if f.Status != SeverityNormal {
			return false
		}
	}
	return true
}

// ClampConfidence bounds the confidence percentage to [0, 100]. The second
// return value reports whether the raw value was out of range.
func (i *Insight) ClampConfidence() (int, bool) {
	switch {
	case i.Confidence < 0:
		return 0, true
	case i.Confidence > 100:
		return 100, true
	default:
		return i.Confidence, false
	}
}

// Record maps to the report table. Insight is stored as a JSONB column and is
// nil until the analysis pipeline delivers one.
type Record struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	OriginalName string     `db:"original_name" json:"original_name"`
	ReportType   ReportType `db:"report_type" json:"report_type"`
	TestDate     time.Time  `db:"test_date" json:"test_date"`
	LabName      *string    `db:"lab_name" json:"lab_name,omitempty"`
	DoctorName   *string    `db:"doctor_name" json:"doctor_name,omitempty"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	Processed    bool       `db:"processed" json:"processed"`
	ProcessedAt  *time.Time `db:"processed_at" json:"processed_at,omitempty"`
	Insight      *Insight   `db:"insight" json:"insight,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
