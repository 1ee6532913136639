package kpi_test

import (
	"testing"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kpi"
)

func intp(v int) *int { return &v }

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		f     pulseboard.KPIFormatting
		want  string
	}{
		{
			name:  "plain integer",
			value: 42,
			want:  "42",
		},
		{
			name:  "thousands separators",
			value: 1234567,
			want:  "1,234,567",
		},
		{
			name:  "currency with decimals",
			value: 1234.567,
			f:     pulseboard.KPIFormatting{Prefix: "$", Decimals: intp(2)},
			want:  "$1,234.57",
		},
		{
			name:  "suffix",
			value: 99.4,
			f:     pulseboard.KPIFormatting{Suffix: "%", Decimals: intp(1)},
			want:  "99.4%",
		},
		{
			name:  "rounds half away from zero",
			value: 2.5,
			want:  "3",
		},
		{
			name:  "negative rounds half away from zero",
			value: -2.5,
			want:  "-3",
		},
		{
			name:  "negative with separators",
			value: -1234.5,
			f:     pulseboard.KPIFormatting{Decimals: intp(1)},
			want:  "-1,234.5",
		},
		{
			name:  "zero decimals pad",
			value: 5,
			f:     pulseboard.KPIFormatting{Decimals: intp(2)},
			want:  "5.00",
		},
		{
			name:  "fraction needs zero padding",
			value: 1.05,
			f:     pulseboard.KPIFormatting{Decimals: intp(2)},
			want:  "1.05",
		},
		{
			name:  "negative rounding to zero drops the sign",
			value: -0.4,
			want:  "0",
		},
		{
			name:  "zero value",
			value: 0,
			f:     pulseboard.KPIFormatting{Prefix: "$"},
			want:  "$0",
		},
		{
			name:  "negative decimal count clamps to zero",
			value: 1234.567,
			f:     pulseboard.KPIFormatting{Decimals: intp(-2)},
			want:  "1,235",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kpi.FormatValue(tt.value, tt.f); got != tt.want {
				t.Fatalf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
