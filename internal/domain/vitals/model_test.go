package vitals

import "testing"

func TestRecord_Description(t *testing.T) {
	r := &Record{
		BloodPressure: bpPair(150, 95),
		HeartRate:     &Measurement{Value: 72},
		BloodSugar:    &BloodSugar{Fasting: floatPtr(110)},
		Weight:        &Measurement{Value: 70},
		Temperature:   &Measurement{Value: 98.6},
	}
	want := "BP: 150/95, HR: 72, Sugar: 110, Weight: 70kg, Temp: 98.6°F"
	if got := r.Description(); got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
}

func TestRecord_Description_Partial(t *testing.T) {
	r := &Record{Weight: &Measurement{Value: 70}}
	if got := r.Description(); got != "Weight: 70kg" {
		t.Errorf("Description() = %q", got)
	}
}

func TestRecord_Description_Empty(t *testing.T) {
	r := &Record{}
	if got := r.Description(); got != DefaultDescription {
		t.Errorf("Description() = %q, want placeholder", got)
	}
}

func TestRecord_HasMeasurements(t *testing.T) {
	if (&Record{}).HasMeasurements() {
		t.Error("empty record has no measurements")
	}
	if !(&Record{OxygenSaturation: &Measurement{Value: 98}}).HasMeasurements() {
		t.Error("SpO2 counts as a measurement")
	}
}
