package oscaltypes

import "time"

type (
	dateKind                 struct{}
	dateTimeKind             struct{}
	dateTimeWithTimezoneKind struct{}
)

func (dateKind) desc() *descriptor                 { return dateType }
func (dateTimeKind) desc() *descriptor             { return dateTimeType }
func (dateTimeWithTimezoneKind) desc() *descriptor { return dateTimeWithTimezoneType }

const (
	dateLayout      = "2006-01-02"
	naiveLayout     = "2006-01-02T15:04:05"
	naiveNanoLayout = "2006-01-02T15:04:05.999999999"

	datePart = `(((2000|2400|2800|(19|2[0-9](0[48]|[2468][048]|[13579][26])))-02-29)|(((19|2[0-9])[0-9]{2})-02-(0[1-9]|1[0-9]|2[0-8]))|(((19|2[0-9])[0-9]{2})-(0[13578]|10|12)-(0[1-9]|[12][0-9]|3[01]))|(((19|2[0-9])[0-9]{2})-(0[469]|11)-(0[1-9]|[12][0-9]|30)))`
	zonePart = `(Z|(-((0[0-9]|1[0-2]):00|0[39]:30)|\+((0[0-9]|1[0-4]):00|(0[34569]|10):30|(0[58]|12):45)))`
	timePart = `T(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])(\.[0-9]+)?`
)

var (
	dateType = newDescriptor("DateDatatype", StorageString, Format{
		Type:        "string",
		Description: "A string representing a 24-hour period with an optional timezone.",
		Pattern:     "^" + datePart + zonePart + "?$",
	}, validateDate, nil)

	dateTimeType = newDescriptor("DateTimeDatatype", StorageString, Format{
		Type:        "string",
		Description: "A string representing a point in time with an optional timezone.",
		Pattern:     "^" + datePart + timePart + zonePart + "?$",
	}, validateDateTime, nil)

	dateTimeWithTimezoneType = newDescriptor("DateTimeWithTimezoneDatatype", StorageString, Format{
		Type:        "string",
		Description: "A string representing a point in time with a required timezone.",
		Pattern:     "^" + datePart + timePart + zonePart + "$",
	}, validateDateTimeWithTimezone, nil)
)

func validateDate(_ *descriptor, raw string, o Options) error {
	if !o.DateValidation {
		return nil
	}
	_, err := parseDate(raw)
	return err
}

func validateDateTime(_ *descriptor, raw string, o Options) error {
	if !o.DateValidation {
		return nil
	}
	_, err := parseDateTime(raw)
	return err
}

// validateDateTimeWithTimezone ignores DateValidation: the zone is the point
// of the type.
func validateDateTimeWithTimezone(_ *descriptor, raw string, _ Options) error {
	_, err := parseRFC3339(raw)
	return err
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, newError(KindDateParse, "", err)
	}
	return t, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, newError(KindDateParse, "", err)
	}
	return t, nil
}

// parseDateTime tries the zoned form first and falls back to a naive local
// date-time, which is returned in UTC.
func parseDateTime(s string) (time.Time, error) {
	if t, err := parseRFC3339(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(naiveNanoLayout, s)
	if err != nil {
		return time.Time{}, newError(KindDateParse, "", err)
	}
	return t, nil
}

// Date is a calendar date (YYYY-MM-DD). With date validation off any text
// is stored, including dates carrying a timezone.
type Date struct{ text[dateKind] }

func ParseDate(raw string, opts ...Option) (Date, error) {
	t, err := parseText[dateKind](raw, buildOptions(opts))
	return Date{t}, err
}

// NewDate returns today's local date.
func NewDate() Date {
	return Date{text[dateKind]{s: time.Now().Format(dateLayout)}}
}

// Time parses the stored date at midnight UTC.
func (d Date) Time() (time.Time, error) { return parseDate(d.s) }

// DateTime is a point in time with an optional zone.
type DateTime struct{ text[dateTimeKind] }

func ParseDateTime(raw string, opts ...Option) (DateTime, error) {
	t, err := parseText[dateTimeKind](raw, buildOptions(opts))
	return DateTime{t}, err
}

// NewDateTime returns the current local wall time without a zone, to the second.
func NewDateTime() DateTime {
	return DateTime{text[dateTimeKind]{s: time.Now().Format(naiveLayout)}}
}

// Time parses the stored value. A naive value is read as UTC.
func (d DateTime) Time() (time.Time, error) { return parseDateTime(d.s) }

// RFC2822 renders a zoned value in RFC 2822 form. It returns "" for naive or
// unparseable values.
func (d DateTime) RFC2822() string {
	t, err := parseRFC3339(d.s)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC1123Z)
}

// DateTimeWithTimezone is an RFC 3339 timestamp; the zone is mandatory.
type DateTimeWithTimezone struct {
	text[dateTimeWithTimezoneKind]
}

func ParseDateTimeWithTimezone(raw string, opts ...Option) (DateTimeWithTimezone, error) {
	t, err := parseText[dateTimeWithTimezoneKind](raw, buildOptions(opts))
	return DateTimeWithTimezone{t}, err
}

// NewDateTimeWithTimezone returns the current instant in UTC.
func NewDateTimeWithTimezone() DateTimeWithTimezone {
	return DateTimeWithTimezone{text[dateTimeWithTimezoneKind]{s: time.Now().UTC().Format(time.RFC3339Nano)}}
}

// DateTimeWithTimezoneOf formats t in RFC 3339 with its own offset.
func DateTimeWithTimezoneOf(t time.Time) DateTimeWithTimezone {
	return DateTimeWithTimezone{text[dateTimeWithTimezoneKind]{s: t.Format(time.RFC3339Nano)}}
}

func (d DateTimeWithTimezone) Time() (time.Time, error) { return parseRFC3339(d.s) }
