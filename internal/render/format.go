package render

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder stands in for every absent, null or unusable value.
const Placeholder = "－"

// RatingMax is the number of units in a rating indicator.
const RatingMax = 5

var yen = message.NewPrinter(language.Japanese)

// Text returns the trimmed value of s, or Placeholder.
func Text(s *string) string {
	if s == nil {
		return Placeholder
	}
	return orPlaceholder(*s)
}

func orPlaceholder(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return Placeholder
}

// WithUnit appends unit to a present value unless it already ends with it.
func WithUnit(s *string, unit string, aliases ...string) string {
	v := Text(s)
	if v == Placeholder {
		return v
	}
	for _, u := range append([]string{unit}, aliases...) {
		if strings.HasSuffix(v, u) {
			return v
		}
	}
	return v + unit
}

// Yen formats a monetary string as "¥120,000". Values that do not parse
// as an amount become Placeholder.
func Yen(s *string) string {
	if s == nil {
		return Placeholder
	}
	amount, ok := ParseAmount(*s)
	if !ok {
		return Placeholder
	}
	return "¥" + yen.Sprintf("%d", amount)
}

// ParseAmount understands plain integers and decimals, digit separators,
// a leading ¥ and trailing 円, and the 万 (x10,000) unit, e.g. "8.5万円".
func ParseAmount(s string) (int64, bool) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "¥")
	v = strings.TrimPrefix(v, "￥")
	v = strings.TrimSuffix(v, "円")

	multiplier := 1.0
	if strings.HasSuffix(v, "万") {
		v = strings.TrimSuffix(v, "万")
		multiplier = 10000
	}
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	amount := math.Round(f * multiplier)
	if math.Abs(amount) >= math.MaxInt64 {
		return 0, false
	}
	return int64(amount), true
}

// Rating is a read-only star indicator.
type Rating struct {
	Present bool    `json:"present"`
	Value   float64 `json:"value,omitempty"`
	Filled  int     `json:"filled"`
	Max     int     `json:"max"`
}

// NewRating rounds v to whole units and clamps it to [0, RatingMax].
func NewRating(v *float64) Rating {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Rating{Max: RatingMax}
	}
	filled := int(math.Round(math.Max(0, math.Min(RatingMax, *v))))
	return Rating{Present: true, Value: *v, Filled: filled, Max: RatingMax}
}

// Stars renders the indicator as filled and empty stars.
func (r Rating) Stars() string {
	if !r.Present {
		return Placeholder
	}
	return strings.Repeat("★", r.Filled) + strings.Repeat("☆", r.Max-r.Filled)
}
