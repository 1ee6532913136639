package datasource_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/datasource"
)

func TestHTTPConnectionTester(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Type        pulseboard.DataSourceType        `json:"type"`
		Config      pulseboard.DataSourceConfig      `json:"config"`
		Credentials pulseboard.DataSourceCredentials `json:"credentials"`
	}

	probe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode(pulseboard.ConnectionTestResult{
			Success:      true,
			Message:      "ok",
			ResponseTime: 12,
		})
	}))
	defer probe.Close()

	tester := datasource.NewHTTPConnectionTester(probe.URL)
	ds := &pulseboard.DataSource{
		Type: pulseboard.DataSourcePostgreSQL,
		Config: pulseboard.DataSourceConfig{
			Database: &pulseboard.DatabaseConfig{Host: "db.internal", Port: 5432, Database: "metrics"},
		},
		Credentials: pulseboard.DataSourceCredentials{Username: "app", Password: "hunter2"},
	}

	result, err := tester.TestConnection(context.Background(), ds)
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/api/datasources/test" {
		t.Fatalf("probe called at %q, want /api/datasources/test", gotPath)
	}
	if gotBody.Type != pulseboard.DataSourcePostgreSQL {
		t.Fatalf("expected type forwarded, got %q", gotBody.Type)
	}
	if gotBody.Credentials.Password != "hunter2" {
		t.Fatal("expected credentials forwarded to the probe")
	}
	if !result.Success || result.Message != "ok" || result.ResponseTime != 12 {
		t.Fatalf("unexpected verdict %+v", result)
	}
}

func TestHTTPConnectionTester_ProbeFailure(t *testing.T) {
	probe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer probe.Close()

	tester := datasource.NewHTTPConnectionTester(probe.URL)
	if _, err := tester.TestConnection(context.Background(), &pulseboard.DataSource{}); err == nil {
		t.Fatal("expected an error for a non-200 probe response")
	}
}
