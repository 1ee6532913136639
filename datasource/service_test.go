package datasource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/datasource"
	"github.com/pulseboard/pulseboard/inmem"
	platerrors "github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/mock"
)

func newTestService(t *testing.T, tester pulseboard.ConnectionTester) *datasource.Service {
	t.Helper()

	st, err := datasource.NewStore(inmem.NewKVStore())
	if err != nil {
		t.Fatal(err)
	}
	return datasource.NewService(st, tester)
}

func postgresSource(name string) *pulseboard.DataSource {
	return &pulseboard.DataSource{
		Name: name,
		Type: pulseboard.DataSourcePostgreSQL,
		Config: pulseboard.DataSourceConfig{
			Database: &pulseboard.DatabaseConfig{
				Host:     "db.internal",
				Port:     5432,
				Database: "metrics",
			},
		},
	}
}

func TestCreateDataSource(t *testing.T) {
	svc := newTestService(t, mock.NewConnectionTester())
	ctx := context.Background()

	ds := postgresSource("primary")
	if err := svc.CreateDataSource(ctx, ds); err != nil {
		t.Fatal(err)
	}

	if !ds.ID.Valid() {
		t.Fatal("expected data source ID to be set")
	}
	if ds.Status != pulseboard.StatusDisconnected {
		t.Fatalf("expected disconnected status, got %q", ds.Status)
	}
	if ds.Metadata.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be stamped")
	}
}

func TestCreateDataSource_Validation(t *testing.T) {
	svc := newTestService(t, mock.NewConnectionTester())
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		ds := postgresSource("")
		if err := svc.CreateDataSource(ctx, ds); err != datasource.ErrDataSourceNameEmpty {
			t.Fatalf("expected empty name error, got %v", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		ds := postgresSource("bad")
		ds.Type = "carrier-pigeon"
		if err := svc.CreateDataSource(ctx, ds); platerrors.ErrorCode(err) != platerrors.EInvalid {
			t.Fatalf("expected invalid type error, got %v", err)
		}
	})

	t.Run("config shape mismatch", func(t *testing.T) {
		ds := &pulseboard.DataSource{
			Name: "mismatched",
			Type: pulseboard.DataSourcePostgreSQL,
			Config: pulseboard.DataSourceConfig{
				API: &pulseboard.APIConfig{BaseURL: "https://example.com"},
			},
		}
		if err := svc.CreateDataSource(ctx, ds); platerrors.ErrorCode(err) != platerrors.EInvalid {
			t.Fatalf("expected invalid config error, got %v", err)
		}
	})

	t.Run("missing database fields", func(t *testing.T) {
		ds := &pulseboard.DataSource{
			Name: "incomplete",
			Type: pulseboard.DataSourcePostgreSQL,
			Config: pulseboard.DataSourceConfig{
				Database: &pulseboard.DatabaseConfig{Port: 99999},
			},
		}
		if err := svc.CreateDataSource(ctx, ds); platerrors.ErrorCode(err) != platerrors.EInvalid {
			t.Fatalf("expected invalid config error, got %v", err)
		}
	})

	t.Run("api config", func(t *testing.T) {
		ds := &pulseboard.DataSource{
			Name: "api source",
			Type: pulseboard.DataSourceRESTAPI,
			Config: pulseboard.DataSourceConfig{
				API: &pulseboard.APIConfig{BaseURL: "https://api.example.com", Timeout: 30},
			},
		}
		if err := svc.CreateDataSource(ctx, ds); err != nil {
			t.Fatalf("expected valid api config, got %v", err)
		}
	})
}

func TestTestConnection_StateMachine(t *testing.T) {
	tester := mock.NewConnectionTester()
	svc := newTestService(t, tester)
	ctx := context.Background()

	ds := postgresSource("primary")
	if err := svc.CreateDataSource(ctx, ds); err != nil {
		t.Fatal(err)
	}

	t.Run("success connects", func(t *testing.T) {
		result, err := svc.TestConnection(ctx, ds.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Success {
			t.Fatal("expected a successful test")
		}

		got, err := svc.FindDataSourceByID(ctx, ds.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != pulseboard.StatusConnected {
			t.Fatalf("expected connected, got %q", got.Status)
		}
		if got.Metadata.LastTestedAt == nil {
			t.Fatal("expected lastTestedAt to be stamped")
		}
		if got.Metadata.LastTestMessage != "ok" {
			t.Fatalf("expected test message recorded, got %q", got.Metadata.LastTestMessage)
		}
	})

	t.Run("failed test errors", func(t *testing.T) {
		tester.TestConnectionFn = func(context.Context, *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error) {
			return &pulseboard.ConnectionTestResult{Success: false, Message: "authentication failed"}, nil
		}

		if _, err := svc.TestConnection(ctx, ds.ID); err != nil {
			t.Fatal(err)
		}
		got, err := svc.FindDataSourceByID(ctx, ds.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != pulseboard.StatusError {
			t.Fatalf("expected error status, got %q", got.Status)
		}
		if got.Metadata.LastTestMessage != "authentication failed" {
			t.Fatalf("unexpected test message %q", got.Metadata.LastTestMessage)
		}
	})

	t.Run("transport error errors", func(t *testing.T) {
		tester.TestConnectionFn = func(context.Context, *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error) {
			return nil, errors.New("connection refused")
		}

		result, err := svc.TestConnection(ctx, ds.ID)
		if err != nil {
			t.Fatal(err)
		}
		if result.Success {
			t.Fatal("expected a failed result")
		}
		if result.Message != "connection refused" {
			t.Fatalf("expected transport error surfaced, got %q", result.Message)
		}

		got, err := svc.FindDataSourceByID(ctx, ds.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != pulseboard.StatusError {
			t.Fatalf("expected error status, got %q", got.Status)
		}
	})
}

func TestUpdateDataSource_ManualStatusOverride(t *testing.T) {
	tester := mock.NewConnectionTester()
	svc := newTestService(t, tester)
	ctx := context.Background()

	ds := postgresSource("primary")
	if err := svc.CreateDataSource(ctx, ds); err != nil {
		t.Fatal(err)
	}

	status := pulseboard.StatusConnected
	got, err := svc.UpdateDataSource(ctx, ds.ID, pulseboard.DataSourceUpdate{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != pulseboard.StatusConnected {
		t.Fatalf("expected connected, got %q", got.Status)
	}
	if !got.Metadata.ManualOverride {
		t.Fatal("expected the manual override flag to be set")
	}

	// a connection test reclaims the state machine
	if _, err := svc.TestConnection(ctx, ds.ID); err != nil {
		t.Fatal(err)
	}
	got, err = svc.FindDataSourceByID(ctx, ds.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Metadata.ManualOverride {
		t.Fatal("expected the manual override flag to be cleared by a test")
	}

	bogus := pulseboard.ConnectionStatus("flaky")
	if _, err := svc.UpdateDataSource(ctx, ds.ID, pulseboard.DataSourceUpdate{Status: &bogus}); platerrors.ErrorCode(err) != platerrors.EInvalid {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestDeleteDataSource(t *testing.T) {
	svc := newTestService(t, mock.NewConnectionTester())
	ctx := context.Background()

	ds := postgresSource("primary")
	if err := svc.CreateDataSource(ctx, ds); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDataSource(ctx, ds.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FindDataSourceByID(ctx, ds.ID); err != datasource.ErrDataSourceNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStatistics(t *testing.T) {
	svc := newTestService(t, mock.NewConnectionTester())
	ctx := context.Background()

	first := postgresSource("first")
	second := postgresSource("second")
	api := &pulseboard.DataSource{
		Name: "api",
		Type: pulseboard.DataSourceRESTAPI,
		Config: pulseboard.DataSourceConfig{
			API: &pulseboard.APIConfig{BaseURL: "https://api.example.com"},
		},
	}
	for _, ds := range []*pulseboard.DataSource{first, second, api} {
		if err := svc.CreateDataSource(ctx, ds); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.TestConnection(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Fatalf("expected 3 sources, got %d", stats.Total)
	}
	if stats.Connected != 1 {
		t.Fatalf("expected 1 connected source, got %d", stats.Connected)
	}
	if stats.ByType[pulseboard.DataSourcePostgreSQL] != 2 || stats.ByType[pulseboard.DataSourceRESTAPI] != 1 {
		t.Fatalf("unexpected type breakdown %v", stats.ByType)
	}
}
