package kpi

import (
	"context"

	"github.com/pulseboard/pulseboard"
)

// unsupportedEvaluator is the default FormulaEvaluator. Formulas are user
// supplied strings; refusing them all is the safe default until a sandboxed
// evaluator is wired in.
type unsupportedEvaluator struct{}

var _ pulseboard.FormulaEvaluator = unsupportedEvaluator{}

func (unsupportedEvaluator) Evaluate(ctx context.Context, formula string) (float64, error) {
	return 0, ErrFormulaNotSupported
}
