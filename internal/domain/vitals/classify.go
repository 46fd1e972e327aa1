package vitals

import "math"

// Alert labels surfaced on out-of-range readings.
const (
	AlertHighBP     = "High BP"
	AlertLowBP      = "Low BP"
	AlertHighSugar  = "High Sugar"
	AlertAbnormalHR = "Abnormal HR"
)

// BMI category labels.
const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

// ComputeAlerts classifies the record's readings against clinical
// thresholds. Classification branches on presence: an absent reading
// contributes no alerts, so a half-recorded blood-pressure pair is
// judged on its present side only. Only fasting sugar is classified,
// since post-prandial and random readings have no single cutoff.
func ComputeAlerts(r *Record) []string {
	alerts := []string{}
	if bp := r.BloodPressure; bp != nil {
		if (bp.Systolic != nil && *bp.Systolic > 140) || (bp.Diastolic != nil && *bp.Diastolic > 90) {
			alerts = append(alerts, AlertHighBP)
		}
		if (bp.Systolic != nil && *bp.Systolic < 90) || (bp.Diastolic != nil && *bp.Diastolic < 60) {
			alerts = append(alerts, AlertLowBP)
		}
	}
	if bs := r.BloodSugar; bs != nil && bs.Fasting != nil && *bs.Fasting > 126 {
		alerts = append(alerts, AlertHighSugar)
	}
	if hr := r.HeartRate; hr != nil && (hr.Value > 100 || hr.Value < 60) {
		alerts = append(alerts, AlertAbnormalHR)
	}
	return alerts
}

// ComputeBMI derives body-mass index, weight(kg) / height(m)^2, rounded
// to one decimal place. Heights above 3 are taken to be centimetres.
// Returns false when either measurement is absent or non-positive.
func ComputeBMI(weight, height *Measurement) (float64, bool) {
	if weight == nil || height == nil || weight.Value <= 0 || height.Value <= 0 {
		return 0, false
	}
	h := height.Value
	if h > 3 {
		h /= 100
	}
	return math.Round(weight.Value/(h*h)*10) / 10, true
}

// CategoryForBMI buckets a BMI value into its category label.
func CategoryForBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
