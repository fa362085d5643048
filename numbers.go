package oscaltypes

type (
	booleanKind            struct{}
	integerKind            struct{}
	nonNegativeIntegerKind struct{}
	positiveIntegerKind    struct{}
	decimalKind            struct{}
)

func (booleanKind) desc() *descriptor            { return booleanType }
func (integerKind) desc() *descriptor            { return integerType }
func (nonNegativeIntegerKind) desc() *descriptor { return nonNegativeIntegerType }
func (positiveIntegerKind) desc() *descriptor    { return positiveIntegerType }
func (decimalKind) desc() *descriptor            { return decimalType }

var (
	booleanType = newDescriptor("BooleanDatatype", StorageBool, Format{
		Type:        "boolean",
		Description: "A binary value that is either: true or false.",
	}, validateLiteral[bool], nil)

	integerType = newDescriptor("IntegerDatatype", StorageInt64, Format{
		Type:        "integer",
		Description: "A whole number value.",
	}, validateLiteral[int64], nil)

	nonNegativeIntegerType = newDescriptor("NonNegativeIntegerDatatype", StorageUint64, Format{
		Type:        "integer",
		Description: "An integer value that is equal to or greater than 0.",
		Bounds:      Bounds{Minimum: ptrFloat(0)},
	}, validateLiteral[uint64], nil)

	positiveIntegerType = newDescriptor("PositiveIntegerDatatype", StorageUint64, Format{
		Type:        "integer",
		Description: "An integer value that is greater than 0.",
		Bounds:      Bounds{Minimum: ptrFloat(1)},
	}, validateLiteral[uint64], nil)

	decimalType = newDescriptor("DecimalDatatype", StorageFloat64, Format{
		Type:        "number",
		Description: "A real number expressed using a whole and optional fractional part separated by a period.",
	}, validateLiteral[float64], nil)
)

// Boolean is a JSON boolean. The zero value is false.
type Boolean struct{ scalar[booleanKind, bool] }

// ParseBoolean accepts exactly the JSON literals true and false.
func ParseBoolean(raw string, opts ...Option) (Boolean, error) {
	s, err := parseScalar[booleanKind, bool](raw, buildOptions(opts))
	return Boolean{s}, err
}

// BooleanOf wraps a Go bool; every bool is valid.
func BooleanOf(v bool) Boolean { return Boolean{scalar[booleanKind, bool]{v: v}} }

func (b Boolean) Bool() bool { return b.v }

// IsZero reports whether the value is false.
func (b Boolean) IsZero() bool { return !b.v }

// Integer is a signed 64-bit whole number.
type Integer struct{ scalar[integerKind, int64] }

func ParseInteger(raw string, opts ...Option) (Integer, error) {
	s, err := parseScalar[integerKind, int64](raw, buildOptions(opts))
	return Integer{s}, err
}

func IntegerOf(v int64) Integer { return Integer{scalar[integerKind, int64]{v: v}} }

func (i Integer) Int64() int64 { return i.v }
func (i Integer) IsZero() bool { return i.v == 0 }

// NonNegativeInteger is an unsigned whole number with a declared minimum of 0.
type NonNegativeInteger struct {
	scalar[nonNegativeIntegerKind, uint64]
}

// ParseNonNegativeInteger rejects negative and fractional literals.
func ParseNonNegativeInteger(raw string, opts ...Option) (NonNegativeInteger, error) {
	s, err := parseScalar[nonNegativeIntegerKind, uint64](raw, buildOptions(opts))
	return NonNegativeInteger{s}, err
}

func NonNegativeIntegerOf(v uint64) NonNegativeInteger {
	return NonNegativeInteger{scalar[nonNegativeIntegerKind, uint64]{v: v}}
}

func (n NonNegativeInteger) Uint64() uint64 { return n.v }
func (n NonNegativeInteger) IsZero() bool   { return n.v == 0 }

// PositiveInteger is an unsigned whole number with a declared minimum of 1.
// The minimum is enforced only under WithBoundsEnforcement; by default 0 is
// accepted and the bound is schema metadata.
type PositiveInteger struct {
	scalar[positiveIntegerKind, uint64]
}

func ParsePositiveInteger(raw string, opts ...Option) (PositiveInteger, error) {
	s, err := parseScalar[positiveIntegerKind, uint64](raw, buildOptions(opts))
	return PositiveInteger{s}, err
}

// PositiveIntegerOf wraps v. It returns a number_parse error for 0 when
// bounds are enforced.
func PositiveIntegerOf(v uint64, opts ...Option) (PositiveInteger, error) {
	if o := buildOptions(opts); o.EnforceBounds && !positiveIntegerType.format.Bounds.Contains(float64(v)) {
		return PositiveInteger{}, newError(KindNumberParse, "value outside the declared bounds of "+positiveIntegerType.name, nil)
	}
	return PositiveInteger{scalar[positiveIntegerKind, uint64]{v: v}}, nil
}

// NewPositiveInteger returns the smallest value inside the declared bounds.
func NewPositiveInteger() PositiveInteger {
	return PositiveInteger{scalar[positiveIntegerKind, uint64]{v: 1}}
}

func (p PositiveInteger) Uint64() uint64 { return p.v }
func (p PositiveInteger) IsZero() bool   { return p.v == 0 }

// Decimal is a finite float64.
type Decimal struct{ scalar[decimalKind, float64] }

func ParseDecimal(raw string, opts ...Option) (Decimal, error) {
	s, err := parseScalar[decimalKind, float64](raw, buildOptions(opts))
	return Decimal{s}, err
}

// DecimalOf wraps a finite float64. NaN and the infinities have no JSON
// form and are rejected.
func DecimalOf(v float64) (Decimal, error) {
	if _, err := parseLiteral[float64](strconvFormatFloat(v), decimalType, DefaultOptions()); err != nil {
		return Decimal{}, err
	}
	return Decimal{scalar[decimalKind, float64]{v: v}}, nil
}

func (d Decimal) Float64() float64 { return d.v }
func (d Decimal) IsZero() bool     { return d.v == 0 }
