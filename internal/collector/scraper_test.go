package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rickb777/date"
	"github.com/rs/zerolog"

	"github.com/wellgrid/hbp-api/internal/models"
)

const productionPage = `<html><body>
<table>
<tr><th>Facility</th><th>Operator</th></tr>
<tr><td>BIG HORN 1</td><td>ACME OIL</td></tr>
</table>
<table>
<tr><th>First of Month</th><th>Oil Produced</th><th>Gas Produced</th><th>Days Produced</th><th>Well Status</th></tr>
<tr><td>01/01/2020</td><td>1,204.5</td><td>3,000</td><td>31</td><td>PR</td></tr>
<tr><td>02/01/2020</td><td>0</td><td>0</td><td>0</td><td>SI</td></tr>
<tr><td>03/01/2020</td><td>0</td><td>0</td><td>0</td><td>TA</td></tr>
<tr><td>not a date</td><td>5</td><td>5</td><td>1</td><td>PR</td></tr>
<tr><td>04/01/2020</td><td></td><td></td><td>0</td><td></td></tr>
</table>
</body></html>`

func testConfig(url string) Config {
	cfg := ColoradoConfig
	cfg.ProdURLTemplate = url + "?county=%s&seq=%s"
	return cfg
}

func TestScraperParsesProductionTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("county") != "123" || r.URL.Query().Get("seq") != "45678" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(productionPage))
	}))
	defer srv.Close()

	c := NewScraperCollector(testConfig(srv.URL), srv.Client(), zerolog.Nop())
	h, err := c.GetWellHistory(context.Background(), "05-123-45678", "BIG HORN 1")
	if err != nil {
		t.Fatal(err)
	}

	if len(h.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(h.Records))
	}
	// One row with an unreadable date, one with neither volume nor
	// status.
	if h.SkippedRecords != 2 {
		t.Errorf("SkippedRecords = %d, want 2", h.SkippedRecords)
	}

	jan := h.Records[0]
	if !jan.Month.Equal(date.New(2020, time.January, 1)) {
		t.Errorf("first month = %s", jan.Month)
	}
	if jan.Status != models.StatusProducing {
		t.Errorf("January status = %s, want producing", jan.Status)
	}
	if jan.OilBBL == nil || *jan.OilBBL != 1204.5 {
		t.Errorf("January oil = %v, want 1204.5", jan.OilBBL)
	}
	if jan.DaysProduced != 31 {
		t.Errorf("January days produced = %d, want 31", jan.DaysProduced)
	}

	feb := h.Records[1]
	if feb.Status != models.StatusShutIn {
		t.Errorf("February status = %s, want shut-in", feb.Status)
	}
	mar := h.Records[2]
	if mar.Status != models.StatusNotProducing {
		t.Errorf("March status = %s, want not producing", mar.Status)
	}
}

func TestScraperNoProductionTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>No results found.</p></body></html>"))
	}))
	defer srv.Close()

	c := NewScraperCollector(testConfig(srv.URL), srv.Client(), zerolog.Nop())
	h, err := c.GetWellHistory(context.Background(), "05-123-45678", "")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Empty() {
		t.Errorf("expected empty history, got %d records", len(h.Records))
	}
}

func TestScraperHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewScraperCollector(testConfig(srv.URL), srv.Client(), zerolog.Nop())
	if _, err := c.GetWellHistory(context.Background(), "05-123-45678", ""); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestScraperUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewScraperCollector(testConfig(srv.URL), nil, zerolog.Nop())
	if _, err := c.GetWellHistory(context.Background(), "05-123-45678", ""); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}

func TestScraperSendsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Auth = &BasicAuth{Username: "subscriber", Password: "hunter2"}
	c := NewScraperCollector(cfg, srv.Client(), zerolog.Nop())
	if _, err := c.GetWellHistory(context.Background(), "05-123-45678", ""); err != nil {
		t.Fatal(err)
	}
	if gotUser != "subscriber" || gotPass != "hunter2" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
}

func TestScraperBadAPINumber(t *testing.T) {
	c := NewScraperCollector(testConfig("http://example.invalid"), nil, zerolog.Nop())
	if _, err := c.GetWellHistory(context.Background(), "garbage", ""); err == nil {
		t.Fatal("expected error for API number without components")
	}
}

func TestCountyAndSequence(t *testing.T) {
	args, err := countyAndSequence("33-007-01231")
	if err != nil {
		t.Fatal(err)
	}
	if len(args) != 2 || args[0] != "007" || args[1] != "01231" {
		t.Errorf("components = %v", args)
	}
	if _, err := countyAndSequence("nope"); err == nil {
		t.Error("expected error for malformed API number")
	}
}

func TestParseMonthLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want date.Date
		ok   bool
	}{
		{"01/01/2020", date.New(2020, time.January, 1), true},
		{"1/1/2020", date.New(2020, time.January, 1), true},
		{"02/2020", date.New(2020, time.February, 1), true},
		{"2020-03-01", date.New(2020, time.March, 1), true},
		{"", date.Date{}, false},
		{"March 2020", date.Date{}, false},
	}
	for _, tt := range tests {
		got, ok := parseMonth(tt.in)
		if ok != tt.ok {
			t.Errorf("parseMonth(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parseMonth(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"1,204.5", floatPtr(1204.5)},
		{"0", floatPtr(0)},
		{"", nil},
		{"-", nil},
		{"-5", nil},
		{"n/a", nil},
	}
	for _, tt := range tests {
		got := parseVolume(tt.in)
		switch {
		case (got == nil) != (tt.want == nil):
			t.Errorf("parseVolume(%q) = %v, want %v", tt.in, got, tt.want)
		case got != nil && *got != *tt.want:
			t.Errorf("parseVolume(%q) = %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func floatPtr(v float64) *float64 { return &v }
