package oscaltypes

import (
	"math"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

type (
	dayTimeDurationKind   struct{}
	yearMonthDurationKind struct{}
)

func (dayTimeDurationKind) desc() *descriptor   { return dayTimeDurationType }
func (yearMonthDurationKind) desc() *descriptor { return yearMonthDurationType }

const secondsPart = `([0-9]+|[0-9]+(\.[0-9]+)?)S`

var timeDesignators = `T(([0-9]+H([0-9]+M)?(` + secondsPart + `)?)|([0-9]+M(` + secondsPart + `)?)|` + secondsPart + `)`

var (
	dayTimeDurationType = newDescriptor("DayTimeDurationDatatype", StorageString, Format{
		Type:        "string",
		Description: "An amount of time quantified in days, hours, minutes, and seconds.",
		Format:      "duration",
		Pattern:     `^-?P([0-9]+D(` + timeDesignators + `)?|` + timeDesignators + `)$`,
	}, validateDayTimeDuration, nil)

	yearMonthDurationType = newDescriptor("YearMonthDurationDatatype", StorageString, Format{
		Type:        "string",
		Description: "An amount of time quantified in years and months based on ISO-8601 durations (see also RFC3339 appendix A).",
		Format:      "duration",
		Pattern:     `^-?P([0-9]+Y([0-9]+M)?|[0-9]+M)$`,
	}, validateYearMonthDuration, nil)
)

// parseDuration parses an ISO 8601 duration and splits off the date
// designators (the part before T) for the per-type component checks.
func parseDuration(raw string) (*duration.Duration, string, error) {
	if !strings.ContainsAny(raw, "0123456789") {
		return nil, "", newError(KindDurationParse, "no components", nil)
	}
	d, err := duration.Parse(raw)
	if err != nil {
		return nil, "", newError(KindDurationParse, "", err)
	}
	date, clock, hasTime := strings.Cut(raw, "T")
	if hasTime && clock == "" {
		return nil, "", newError(KindDurationParse, "time designator without components", nil)
	}
	return d, date, nil
}

func validateDayTimeDuration(_ *descriptor, raw string, _ Options) error {
	_, date, err := parseDuration(raw)
	if err != nil {
		return err
	}
	if strings.ContainsAny(date, "YMW") {
		return newError(KindDurationParse, "years, months and weeks are not allowed", nil)
	}
	return nil
}

func validateYearMonthDuration(_ *descriptor, raw string, _ Options) error {
	_, date, err := parseDuration(raw)
	if err != nil {
		return err
	}
	if len(date) != len(raw) || strings.ContainsAny(date, "WD.,") {
		return newError(KindDurationParse, "only years and months are allowed", nil)
	}
	return nil
}

// DayTimeDuration is an ISO 8601 duration limited to days and time components.
type DayTimeDuration struct{ text[dayTimeDurationKind] }

func ParseDayTimeDuration(raw string, opts ...Option) (DayTimeDuration, error) {
	t, err := parseText[dayTimeDurationKind](raw, buildOptions(opts))
	return DayTimeDuration{t}, err
}

// Duration converts to a time.Duration, counting a day as 24 hours.
func (d DayTimeDuration) Duration() (time.Duration, error) {
	p, _, err := parseDuration(d.s)
	if err != nil {
		return 0, err
	}
	return p.ToTimeDuration(), nil
}

// YearMonthDuration is an ISO 8601 duration limited to years and months.
type YearMonthDuration struct{ text[yearMonthDurationKind] }

func ParseYearMonthDuration(raw string, opts ...Option) (YearMonthDuration, error) {
	t, err := parseText[yearMonthDurationKind](raw, buildOptions(opts))
	return YearMonthDuration{t}, err
}

// Months returns the total number of months, negative for a negative duration.
// Components are whole numbers, so no rounding takes place.
func (d YearMonthDuration) Months() (int64, error) {
	p, _, err := parseDuration(d.s)
	if err != nil {
		return 0, err
	}
	m := int64(math.Round(p.Years*12 + p.Months))
	if p.Negative {
		m = -m
	}
	return m, nil
}
