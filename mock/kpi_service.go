package mock

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.KPIService = (*KPIService)(nil)
var _ pulseboard.ValueReader = (*ValueReader)(nil)
var _ pulseboard.FormulaEvaluator = (*FormulaEvaluator)(nil)

// KPIService is a mock implementation of pulseboard.KPIService.
type KPIService struct {
	FindKPIConfigByIDFn func(context.Context, platform.ID) (*pulseboard.KPIConfig, error)
	FindKPIConfigsFn    func(context.Context, pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error)
	VisibleConfigsFn    func(context.Context) ([]*pulseboard.KPIConfig, error)
	CreateKPIConfigFn   func(context.Context, *pulseboard.KPIConfig) error
	UpdateKPIConfigFn   func(context.Context, platform.ID, pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error)
	DeleteKPIConfigFn   func(context.Context, platform.ID) error
	FetchValueFn        func(context.Context, *pulseboard.KPIConfig) (*pulseboard.KPIValue, error)
}

// NewKPIService returns a mock KPIService where all methods return zero
// values.
func NewKPIService() *KPIService {
	return &KPIService{
		FindKPIConfigByIDFn: func(context.Context, platform.ID) (*pulseboard.KPIConfig, error) { return nil, nil },
		FindKPIConfigsFn: func(context.Context, pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error) {
			return nil, 0, nil
		},
		VisibleConfigsFn:  func(context.Context) ([]*pulseboard.KPIConfig, error) { return nil, nil },
		CreateKPIConfigFn: func(context.Context, *pulseboard.KPIConfig) error { return nil },
		UpdateKPIConfigFn: func(context.Context, platform.ID, pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error) {
			return nil, nil
		},
		DeleteKPIConfigFn: func(context.Context, platform.ID) error { return nil },
		FetchValueFn:      func(context.Context, *pulseboard.KPIConfig) (*pulseboard.KPIValue, error) { return nil, nil },
	}
}

func (s *KPIService) FindKPIConfigByID(ctx context.Context, id platform.ID) (*pulseboard.KPIConfig, error) {
	return s.FindKPIConfigByIDFn(ctx, id)
}

func (s *KPIService) FindKPIConfigs(ctx context.Context, filter pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error) {
	return s.FindKPIConfigsFn(ctx, filter)
}

func (s *KPIService) VisibleConfigs(ctx context.Context) ([]*pulseboard.KPIConfig, error) {
	return s.VisibleConfigsFn(ctx)
}

func (s *KPIService) CreateKPIConfig(ctx context.Context, cfg *pulseboard.KPIConfig) error {
	return s.CreateKPIConfigFn(ctx, cfg)
}

func (s *KPIService) UpdateKPIConfig(ctx context.Context, id platform.ID, upd pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error) {
	return s.UpdateKPIConfigFn(ctx, id, upd)
}

func (s *KPIService) DeleteKPIConfig(ctx context.Context, id platform.ID) error {
	return s.DeleteKPIConfigFn(ctx, id)
}

func (s *KPIService) FetchValue(ctx context.Context, cfg *pulseboard.KPIConfig) (*pulseboard.KPIValue, error) {
	return s.FetchValueFn(ctx, cfg)
}

// ValueReader is a mock implementation of pulseboard.ValueReader.
type ValueReader struct {
	ReadValueFn func(context.Context, *pulseboard.DataSource, string) (float64, float64, error)
}

// NewValueReader returns a reader that reads zero for every metric.
func NewValueReader() *ValueReader {
	return &ValueReader{
		ReadValueFn: func(context.Context, *pulseboard.DataSource, string) (float64, float64, error) {
			return 0, 0, nil
		},
	}
}

func (r *ValueReader) ReadValue(ctx context.Context, ds *pulseboard.DataSource, metric string) (float64, float64, error) {
	return r.ReadValueFn(ctx, ds, metric)
}

// FormulaEvaluator is a mock implementation of pulseboard.FormulaEvaluator.
type FormulaEvaluator struct {
	EvaluateFn func(context.Context, string) (float64, error)
}

func (e *FormulaEvaluator) Evaluate(ctx context.Context, formula string) (float64, error) {
	return e.EvaluateFn(ctx, formula)
}
