package pulseboard

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

// KPISourceType selects the value-resolution strategy for a KPI.
type KPISourceType string

const (
	// KPISourceStatic resolves to a fixed value with no I/O.
	KPISourceStatic KPISourceType = "static"
	// KPISourceDataSource resolves through the data source registry.
	KPISourceDataSource KPISourceType = "datasource"
	// KPISourceCalculated resolves through a formula evaluator.
	KPISourceCalculated KPISourceType = "calculated"
)

// Valid reports whether t is a known KPI source type.
func (t KPISourceType) Valid() bool {
	switch t {
	case KPISourceStatic, KPISourceDataSource, KPISourceCalculated:
		return true
	}
	return false
}

// KPIDataSource describes where a KPI's value comes from. SourceID is a weak
// reference into the data source registry: deleting the referenced data
// source is never blocked, and resolution of a dangling reference degrades to
// a zero value.
type KPIDataSource struct {
	Type               KPISourceType `json:"type"`
	SourceID           *platform.ID  `json:"sourceId,omitempty"`
	Metric             string        `json:"metric,omitempty"`
	StaticValue        *float64      `json:"staticValue,omitempty"`
	CalculationFormula string        `json:"calculationFormula,omitempty"`
}

// KPIFormatting controls how a raw value is rendered.
type KPIFormatting struct {
	Prefix   string `json:"prefix,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
	Decimals *int   `json:"decimals,omitempty"`
	Format   string `json:"format,omitempty"`
}

// KPITrend configures trend computation against a comparison period.
type KPITrend struct {
	Enabled          bool   `json:"enabled"`
	ComparisonPeriod string `json:"comparisonPeriod,omitempty"`
	ShowPercentage   bool   `json:"showPercentage"`
}

// KPITarget configures an optional goal marker.
type KPITarget struct {
	Enabled    bool     `json:"enabled"`
	Value      *float64 `json:"value,omitempty"`
	Comparison string   `json:"comparison,omitempty"`
}

// KPIConfig is a logical metric definition: where its value comes from and
// how it is formatted and trended.
type KPIConfig struct {
	ID          platform.ID   `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	DataSource  KPIDataSource `json:"dataSource"`
	Formatting  KPIFormatting `json:"formatting"`
	Trend       *KPITrend     `json:"trend,omitempty"`
	Target      *KPITarget    `json:"target,omitempty"`
	Order       int           `json:"order"`
	Visible     bool          `json:"visible"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TrendDirection is the direction of change between two readings.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// KPIValue is a resolved reading. Change is a percentage relative to the
// previous value.
type KPIValue struct {
	Value         float64        `json:"value"`
	PreviousValue *float64       `json:"previousValue,omitempty"`
	Change        *float64       `json:"change,omitempty"`
	Trend         TrendDirection `json:"trend,omitempty"`
}

// KPIConfigUpdate is a patch applied to a KPI config.
type KPIConfigUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	DataSource  *KPIDataSource `json:"dataSource,omitempty"`
	Formatting  *KPIFormatting `json:"formatting,omitempty"`
	Trend       *KPITrend      `json:"trend,omitempty"`
	Target      *KPITarget     `json:"target,omitempty"`
	Order       *int           `json:"order,omitempty"`
	Visible     *bool          `json:"visible,omitempty"`
}

// KPIConfigFilter selects KPI configs in FindKPIConfigs.
type KPIConfigFilter struct {
	Visible *bool
}

// ValueReader reads the current and previous raw readings of a metric from a
// resolved data source. Implementations wrap whatever physical protocol the
// data source speaks.
type ValueReader interface {
	ReadValue(ctx context.Context, ds *DataSource, metric string) (current, previous float64, err error)
}

// FormulaEvaluator evaluates a calculated KPI formula. Implementations must
// never execute arbitrary user input; the default evaluator refuses every
// formula.
type FormulaEvaluator interface {
	Evaluate(ctx context.Context, formula string) (float64, error)
}

// KPIService is the KPI configuration engine.
type KPIService interface {
	// FindKPIConfigByID returns a single KPI config by ID.
	FindKPIConfigByID(ctx context.Context, id platform.ID) (*KPIConfig, error)

	// FindKPIConfigs returns KPI configs matching filter in storage order.
	FindKPIConfigs(ctx context.Context, filter KPIConfigFilter) ([]*KPIConfig, int, error)

	// VisibleConfigs returns visible configs stable-sorted ascending by
	// Order; ties keep insertion order.
	VisibleConfigs(ctx context.Context) ([]*KPIConfig, error)

	// CreateKPIConfig creates a KPI config and sets cfg.ID.
	CreateKPIConfig(ctx context.Context, cfg *KPIConfig) error

	// UpdateKPIConfig updates a single KPI config with a changeset.
	UpdateKPIConfig(ctx context.Context, id platform.ID, upd KPIConfigUpdate) (*KPIConfig, error)

	// DeleteKPIConfig removes a KPI config by ID.
	DeleteKPIConfig(ctx context.Context, id platform.ID) error

	// FetchValue resolves a config to a reading. Lookups that fail resolve
	// to a zero value; the dashboard must always have something to render.
	FetchValue(ctx context.Context, cfg *KPIConfig) (*KPIValue, error)
}
