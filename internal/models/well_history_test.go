package models

import (
	"testing"
	"time"

	"github.com/rickb777/date"
)

func record(year int, month time.Month, status RecordStatus) ProductionRecord {
	return ProductionRecord{Month: date.New(year, month, 1), Status: status}
}

func TestNewWellHistoryOrdersRecords(t *testing.T) {
	records := []ProductionRecord{
		record(2020, time.March, StatusProducing),
		record(2020, time.January, StatusProducing),
		record(2020, time.February, StatusShutIn),
	}
	h, err := NewWellHistory("05-123-45678", "BIG SKY 1", records, date.Today(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(h.Records); i++ {
		if !h.Records[i-1].Month.Before(h.Records[i].Month) {
			t.Errorf("records out of order at %d: %s then %s", i, h.Records[i-1].Month, h.Records[i].Month)
		}
	}
	if want := date.New(2020, time.January, 1); !h.FirstMonth.Equal(want) {
		t.Errorf("FirstMonth = %s, want %s", h.FirstMonth, want)
	}
	if want := date.New(2020, time.March, 1); !h.LastMonth.Equal(want) {
		t.Errorf("LastMonth = %s, want %s", h.LastMonth, want)
	}
}

func TestNewWellHistoryRejectsDuplicateMonths(t *testing.T) {
	records := []ProductionRecord{
		record(2020, time.January, StatusProducing),
		record(2020, time.January, StatusShutIn),
	}
	if _, err := NewWellHistory("05-123-45678", "", records, date.Today(), 0); err == nil {
		t.Error("expected error for duplicate reporting periods")
	}
}

func TestNewWellHistoryRequiresAPINumber(t *testing.T) {
	if _, err := NewWellHistory("", "", nil, date.Today(), 0); err == nil {
		t.Error("expected error for missing API number")
	}
}

func TestNewWellHistoryNormalizesMonths(t *testing.T) {
	records := []ProductionRecord{
		{Month: date.New(2020, time.January, 15), Status: StatusProducing},
	}
	h, err := NewWellHistory("05-123-45678", "", records, date.Today(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.New(2020, time.January, 1); !h.Records[0].Month.Equal(want) {
		t.Errorf("Month = %s, want %s", h.Records[0].Month, want)
	}
}

func TestLastDateIsEndOfMonth(t *testing.T) {
	records := []ProductionRecord{
		record(2020, time.January, StatusProducing),
		record(2020, time.February, StatusProducing),
	}
	h, err := NewWellHistory("05-123-45678", "", records, date.Today(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.New(2020, time.February, 29); !h.LastDate().Equal(want) {
		t.Errorf("LastDate() = %s, want %s", h.LastDate(), want)
	}
}

func TestRecordByMonth(t *testing.T) {
	records := []ProductionRecord{
		record(2020, time.January, StatusProducing),
		record(2020, time.March, StatusShutIn),
	}
	h, err := NewWellHistory("05-123-45678", "", records, date.Today(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if rec, ok := h.RecordByMonth(date.New(2020, time.March, 20)); !ok || rec.Status != StatusShutIn {
		t.Errorf("RecordByMonth(2020-03) = %v, %v", rec, ok)
	}
	if _, ok := h.RecordByMonth(date.New(2020, time.February, 1)); ok {
		t.Error("RecordByMonth(2020-02) should report no record")
	}
}

func TestEmptyHistory(t *testing.T) {
	h, err := NewWellHistory("05-123-45678", "", nil, date.Today(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !h.Empty() {
		t.Error("history with no records should be empty")
	}
}
