package models

import "testing"

func floatPtr(v float64) *float64 {
	return &v
}

func TestClassifyRecord(t *testing.T) {
	shutInCodes := []string{"SI"}

	tests := []struct {
		name       string
		oil, gas   *float64
		wellStatus string
		want       RecordStatus
		wantOK     bool
	}{
		{"oil production", floatPtr(120), nil, "PR", StatusProducing, true},
		{"gas production", nil, floatPtr(350), "PR", StatusProducing, true},
		{"zero volumes active status", floatPtr(0), floatPtr(0), "PR", StatusNotProducing, true},
		{"zero volumes shut in", floatPtr(0), floatPtr(0), "SI", StatusShutIn, true},
		{"no volumes shut in", nil, nil, "SI", StatusShutIn, true},
		{"volume overrides shut in", floatPtr(50), nil, "SI", StatusProducing, true},
		{"nothing reported", nil, nil, "", StatusNotProducing, false},
		{"unknown status no volume", nil, nil, "XX", StatusNotProducing, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyRecord(tt.oil, tt.gas, tt.wellStatus, shutInCodes, 0, 0)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyRecordRespectsMinimums(t *testing.T) {
	// 5 BBL of oil below a 10 BBL minimum does not count as producing.
	got, ok := ClassifyRecord(floatPtr(5), nil, "PR", nil, 10, 0)
	if !ok || got != StatusNotProducing {
		t.Errorf("got %s (ok=%v), want NOT_PRODUCING", got, ok)
	}
	got, ok = ClassifyRecord(floatPtr(15), nil, "PR", nil, 10, 0)
	if !ok || got != StatusProducing {
		t.Errorf("got %s (ok=%v), want PRODUCING", got, ok)
	}
}

func TestProducingPolicy(t *testing.T) {
	tests := []struct {
		status       RecordStatus
		shutInCounts bool
		want         bool
	}{
		{StatusProducing, false, true},
		{StatusProducing, true, true},
		{StatusShutIn, false, false},
		{StatusShutIn, true, true},
		{StatusNotProducing, false, false},
		{StatusNotProducing, true, false},
	}
	for _, tt := range tests {
		r := ProductionRecord{Status: tt.status}
		if got := r.Producing(tt.shutInCounts); got != tt.want {
			t.Errorf("Producing(%v) with %s = %v, want %v", tt.shutInCounts, tt.status, got, tt.want)
		}
	}
}
