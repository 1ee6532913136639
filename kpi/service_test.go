package kpi_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/inmem"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kpi"
	"github.com/pulseboard/pulseboard/mock"
)

func newTestService(t *testing.T, sources pulseboard.DataSourceService, opts ...kpi.ServiceOption) *kpi.Service {
	t.Helper()

	st, err := kpi.NewStore(inmem.NewKVStore())
	if err != nil {
		t.Fatal(err)
	}
	return kpi.NewService(st, sources, opts...)
}

func floatp(v float64) *float64 { return &v }
func boolp(v bool) *bool        { return &v }

func TestCreateKPIConfig(t *testing.T) {
	svc := newTestService(t, mock.NewDataSourceService())
	ctx := context.Background()

	cfg := &pulseboard.KPIConfig{Name: "revenue"}
	if err := svc.CreateKPIConfig(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	if !cfg.ID.Valid() {
		t.Fatal("expected config ID to be set")
	}
	if cfg.DataSource.Type != pulseboard.KPISourceStatic {
		t.Fatalf("expected static source default, got %q", cfg.DataSource.Type)
	}
	if cfg.CreatedAt.IsZero() || !cfg.CreatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v and %v", cfg.CreatedAt, cfg.UpdatedAt)
	}

	if err := svc.CreateKPIConfig(ctx, &pulseboard.KPIConfig{}); err != kpi.ErrKPIConfigNameEmpty {
		t.Fatalf("expected empty name error, got %v", err)
	}

	bad := &pulseboard.KPIConfig{Name: "bad", DataSource: pulseboard.KPIDataSource{Type: "oracle"}}
	if err := svc.CreateKPIConfig(ctx, bad); err != kpi.ErrInvalidSourceType {
		t.Fatalf("expected invalid source type error, got %v", err)
	}
}

func TestVisibleConfigs_StableOrder(t *testing.T) {
	svc := newTestService(t, mock.NewDataSourceService())
	ctx := context.Background()

	// two configs tie on order; insertion order must hold
	specs := []struct {
		name    string
		order   int
		visible bool
	}{
		{"third", 2, true},
		{"first", 1, true},
		{"hidden", 0, false},
		{"second", 1, true},
	}
	for _, sp := range specs {
		cfg := &pulseboard.KPIConfig{Name: sp.name, Order: sp.order, Visible: sp.visible}
		if err := svc.CreateKPIConfig(ctx, cfg); err != nil {
			t.Fatal(err)
		}
	}

	cfgs, err := svc.VisibleConfigs(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "third"}
	if len(cfgs) != len(want) {
		t.Fatalf("expected %d visible configs, got %d", len(want), len(cfgs))
	}
	for i, name := range want {
		if cfgs[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, cfgs[i].Name)
		}
	}
}

func TestFetchValue_Static(t *testing.T) {
	svc := newTestService(t, mock.NewDataSourceService())
	ctx := context.Background()

	v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
		Name: "target",
		DataSource: pulseboard.KPIDataSource{
			Type:        pulseboard.KPISourceStatic,
			StaticValue: floatp(1250),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Value != 1250 {
		t.Fatalf("expected 1250, got %v", v.Value)
	}

	// no static value configured resolves to zero
	v, err = svc.FetchValue(ctx, &pulseboard.KPIConfig{
		Name:       "empty",
		DataSource: pulseboard.KPIDataSource{Type: pulseboard.KPISourceStatic},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Value != 0 {
		t.Fatalf("expected zero value, got %v", v.Value)
	}
}

func TestFetchValue_DataSource(t *testing.T) {
	ctx := context.Background()
	sourceID := platform.ID(42)

	t.Run("reads current and previous", func(t *testing.T) {
		sources := mock.NewDataSourceService()
		sources.FindDataSourceByIDFn = func(_ context.Context, id platform.ID) (*pulseboard.DataSource, error) {
			return &pulseboard.DataSource{ID: id, Type: pulseboard.DataSourcePostgreSQL}, nil
		}
		reader := mock.NewValueReader()
		reader.ReadValueFn = func(context.Context, *pulseboard.DataSource, string) (float64, float64, error) {
			return 150, 100, nil
		}
		svc := newTestService(t, sources, kpi.WithValueReader(reader))

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "revenue",
			DataSource: pulseboard.KPIDataSource{
				Type:     pulseboard.KPISourceDataSource,
				SourceID: &sourceID,
				Metric:   "revenue.monthly",
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Value != 150 {
			t.Fatalf("expected 150, got %v", v.Value)
		}
		if v.PreviousValue == nil || *v.PreviousValue != 100 {
			t.Fatalf("expected previous 100, got %v", v.PreviousValue)
		}
		if v.Change == nil || *v.Change != 50 {
			t.Fatalf("expected 50%% change, got %v", v.Change)
		}
		if v.Trend != pulseboard.TrendUp {
			t.Fatalf("expected up trend, got %q", v.Trend)
		}
	})

	t.Run("downward trend", func(t *testing.T) {
		sources := mock.NewDataSourceService()
		sources.FindDataSourceByIDFn = func(_ context.Context, id platform.ID) (*pulseboard.DataSource, error) {
			return &pulseboard.DataSource{ID: id}, nil
		}
		reader := mock.NewValueReader()
		reader.ReadValueFn = func(context.Context, *pulseboard.DataSource, string) (float64, float64, error) {
			return 80, 100, nil
		}
		svc := newTestService(t, sources, kpi.WithValueReader(reader))

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "churn",
			DataSource: pulseboard.KPIDataSource{
				Type:     pulseboard.KPISourceDataSource,
				SourceID: &sourceID,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Trend != pulseboard.TrendDown {
			t.Fatalf("expected down trend, got %q", v.Trend)
		}
		if v.Change == nil || *v.Change != -20 {
			t.Fatalf("expected -20%% change, got %v", v.Change)
		}
	})

	t.Run("zero previous yields no change figure or trend", func(t *testing.T) {
		sources := mock.NewDataSourceService()
		sources.FindDataSourceByIDFn = func(_ context.Context, id platform.ID) (*pulseboard.DataSource, error) {
			return &pulseboard.DataSource{ID: id}, nil
		}
		reader := mock.NewValueReader()
		reader.ReadValueFn = func(context.Context, *pulseboard.DataSource, string) (float64, float64, error) {
			return 10, 0, nil
		}
		svc := newTestService(t, sources, kpi.WithValueReader(reader))

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "fresh",
			DataSource: pulseboard.KPIDataSource{
				Type:     pulseboard.KPISourceDataSource,
				SourceID: &sourceID,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Change != nil {
			t.Fatalf("expected no change figure, got %v", *v.Change)
		}
		if v.Trend != "" {
			t.Fatalf("expected no trend without a baseline, got %q", v.Trend)
		}
	})

	t.Run("dangling reference degrades to zero", func(t *testing.T) {
		sources := mock.NewDataSourceService()
		sources.FindDataSourceByIDFn = func(context.Context, platform.ID) (*pulseboard.DataSource, error) {
			return nil, &errors.Error{Code: errors.ENotFound, Msg: "data source not found"}
		}
		svc := newTestService(t, sources, kpi.WithValueReader(mock.NewValueReader()))

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "dangling",
			DataSource: pulseboard.KPIDataSource{
				Type:     pulseboard.KPISourceDataSource,
				SourceID: &sourceID,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Value != 0 || v.PreviousValue != nil {
			t.Fatalf("expected a zero reading, got %+v", v)
		}
	})

	t.Run("nil source reference degrades to zero", func(t *testing.T) {
		svc := newTestService(t, mock.NewDataSourceService())

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name:       "unbound",
			DataSource: pulseboard.KPIDataSource{Type: pulseboard.KPISourceDataSource},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Value != 0 {
			t.Fatalf("expected a zero reading, got %+v", v)
		}
	})
}

func TestFetchValue_Calculated(t *testing.T) {
	ctx := context.Background()

	t.Run("default evaluator refuses formulas", func(t *testing.T) {
		svc := newTestService(t, mock.NewDataSourceService())

		_, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "derived",
			DataSource: pulseboard.KPIDataSource{
				Type:               pulseboard.KPISourceCalculated,
				CalculationFormula: "a + b",
			},
		})
		if errors.ErrorCode(err) != errors.ENotImplemented {
			t.Fatalf("expected not implemented, got %v", err)
		}
	})

	t.Run("injected evaluator is used", func(t *testing.T) {
		eval := &mock.FormulaEvaluator{
			EvaluateFn: func(_ context.Context, formula string) (float64, error) {
				if formula != "a + b" {
					t.Fatalf("unexpected formula %q", formula)
				}
				return 7, nil
			},
		}
		svc := newTestService(t, mock.NewDataSourceService(), kpi.WithFormulaEvaluator(eval))

		v, err := svc.FetchValue(ctx, &pulseboard.KPIConfig{
			Name: "derived",
			DataSource: pulseboard.KPIDataSource{
				Type:               pulseboard.KPISourceCalculated,
				CalculationFormula: "a + b",
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Value != 7 {
			t.Fatalf("expected 7, got %v", v.Value)
		}
	})
}

func TestUpdateKPIConfig(t *testing.T) {
	svc := newTestService(t, mock.NewDataSourceService())
	ctx := context.Background()

	cfg := &pulseboard.KPIConfig{Name: "revenue", Visible: true}
	if err := svc.CreateKPIConfig(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateKPIConfig(ctx, cfg.ID, pulseboard.KPIConfigUpdate{Visible: boolp(false)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Visible {
		t.Fatal("expected config hidden")
	}

	if _, err := svc.UpdateKPIConfig(ctx, platform.ID(999), pulseboard.KPIConfigUpdate{}); err != kpi.ErrKPIConfigNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestKPIConfigTimestamps_SurviveStorage(t *testing.T) {
	mockClock := clock.NewMock()
	mockClock.Add(90*time.Minute + 987654321*time.Nanosecond)
	svc := newTestService(t, mock.NewDataSourceService(), kpi.WithClock(mockClock))
	ctx := context.Background()

	cfg := &pulseboard.KPIConfig{Name: "revenue"}
	if err := svc.CreateKPIConfig(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := svc.FindKPIConfigByID(ctx, cfg.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !got.CreatedAt.Equal(cfg.CreatedAt) {
		t.Fatalf("createdAt changed across storage: %v != %v", got.CreatedAt, cfg.CreatedAt)
	}
	if !got.UpdatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("updatedAt changed across storage: %v != %v", got.UpdatedAt, cfg.UpdatedAt)
	}
}
