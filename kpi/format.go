package kpi

import (
	"math"
	"strconv"
	"strings"

	"github.com/pulseboard/pulseboard"
)

// FormatValue renders a raw reading for display: the value is rounded half
// away from zero to the configured number of decimals (default 0), the
// integer part gets thousands separators, and the prefix and suffix are
// attached verbatim. Negative decimal counts are clamped to 0.
func FormatValue(value float64, f pulseboard.KPIFormatting) string {
	decimals := 0
	if f.Decimals != nil && *f.Decimals > 0 {
		decimals = *f.Decimals
	}

	neg := value < 0 || (value == 0 && math.Signbit(value))
	abs := math.Abs(value)

	shift := math.Pow(10, float64(decimals))
	rounded := math.Floor(abs*shift + 0.5)

	intPart := int64(rounded / shift)
	fracPart := int64(rounded) - intPart*int64(shift)

	body := groupThousands(strconv.FormatInt(intPart, 10))
	if decimals > 0 {
		frac := strconv.FormatInt(fracPart, 10)
		body += "." + strings.Repeat("0", decimals-len(frac)) + frac
	}
	if neg && rounded != 0 {
		body = "-" + body
	}

	return f.Prefix + body + f.Suffix
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
