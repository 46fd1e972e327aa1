package vitals

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BloodPressure is a systolic/diastolic pair. Each side is optional so a
// half-recorded pair is distinguishable from a zero reading; the service
// rejects half pairs on write, but external data may still carry them.
type BloodPressure struct {
	Systolic  *int   `json:"systolic,omitempty"`
	Diastolic *int   `json:"diastolic,omitempty"`
	Unit      string `json:"unit,omitempty"`
}

// Measurement is a single numeric reading with its unit.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// BloodSugar groups the three common glucose readings. Each is optional;
// a nil field means the reading was not taken, which is distinct from a
// zero reading.
type BloodSugar struct {
	Fasting      *float64 `json:"fasting,omitempty"`
	PostPrandial *float64 `json:"post_prandial,omitempty"`
	Random       *float64 `json:"random,omitempty"`
	Unit         string   `json:"unit,omitempty"`
}

// Record is one manually entered set of vital signs. Every measurement is
// optional; nil means not recorded.
type Record struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	BloodPressure    *BloodPressure `json:"blood_pressure,omitempty"`
	HeartRate        *Measurement   `json:"heart_rate,omitempty"`
	BloodSugar       *BloodSugar    `json:"blood_sugar,omitempty"`
	Weight           *Measurement   `json:"weight,omitempty"`
	Height           *Measurement   `json:"height,omitempty"`
	Temperature      *Measurement   `json:"temperature,omitempty"`
	OxygenSaturation *Measurement   `json:"oxygen_saturation,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	Alerts           []string       `json:"alerts"`
	BMI              *float64       `json:"bmi,omitempty"`
	BMICategory      *string        `json:"bmi_category,omitempty"`
	RecordedAt       time.Time      `json:"recorded_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// HasMeasurements reports whether at least one vital sign was recorded.
func (r *Record) HasMeasurements() bool {
	return r.BloodPressure != nil || r.HeartRate != nil || r.BloodSugar != nil ||
		r.Weight != nil || r.Height != nil || r.Temperature != nil || r.OxygenSaturation != nil
}

// DefaultDescription is used when a record carries no measurements.
const DefaultDescription = "Vitals recorded"

// Title is the fixed display title for a vitals entry.
const Title = "Health Vitals"

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Description builds the display summary from whichever measurements are
// present, in a fixed order: blood pressure, heart rate, blood sugar,
// weight, temperature.
func (r *Record) Description() string {
	var parts []string
	if bp := r.BloodPressure; bp != nil && bp.Systolic != nil && bp.Diastolic != nil {
		parts = append(parts, "BP: "+strconv.Itoa(*bp.Systolic)+"/"+strconv.Itoa(*bp.Diastolic))
	}
	if hr := r.HeartRate; hr != nil {
		parts = append(parts, "HR: "+formatNumber(hr.Value))
	}
	if bs := r.BloodSugar; bs != nil && bs.Fasting != nil {
		parts = append(parts, "Sugar: "+formatNumber(*bs.Fasting))
	}
	if w := r.Weight; w != nil {
		parts = append(parts, "Weight: "+formatNumber(w.Value)+"kg")
	}
	if tmp := r.Temperature; tmp != nil {
		parts = append(parts, "Temp: "+formatNumber(tmp.Value)+"°F")
	}
	if len(parts) == 0 {
		return DefaultDescription
	}
	return strings.Join(parts, ", ")
}
