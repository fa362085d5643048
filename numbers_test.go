package oscaltypes_test

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/oscaltypes"
)

func TestBoolean_Literals(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
		ok   bool
	}{
		{"true", true, true},
		{"false", false, true},
		{"1", false, false},
		{"TRUE", false, false},
		{`"true"`, false, false},
		{"", false, false},
	} {
		b, err := oscaltypes.ParseBoolean(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseBoolean(%q) err=%v", tc.in, err)
		}
		if err != nil {
			if !errors.Is(err, oscaltypes.ErrBooleanParse) {
				t.Fatalf("ParseBoolean(%q) kind: %v", tc.in, err)
			}
			continue
		}
		if b.Bool() != tc.want || b.String() != tc.in {
			t.Fatalf("ParseBoolean(%q) = %v (%q)", tc.in, b.Bool(), b.String())
		}
	}
}

func TestInteger_Parse(t *testing.T) {
	i, err := oscaltypes.ParseInteger("-42")
	if err != nil || i.Int64() != -42 {
		t.Fatalf("ParseInteger(-42) = %v, %v", i.Int64(), err)
	}
	for _, bad := range []string{"1.5", "1e3", "abc", "", "null", "true"} {
		if _, err := oscaltypes.ParseInteger(bad); !errors.Is(err, oscaltypes.ErrNumberParse) {
			t.Fatalf("ParseInteger(%q) expected number_parse, got %v", bad, err)
		}
	}
}

func TestIntegers_RangeAndGrammar(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		ok   bool
	}{
		{"IntegerDatatype", "9223372036854775807", true},
		{"IntegerDatatype", "9223372036854775808", false},
		{"IntegerDatatype", "-9223372036854775808", true},
		{"IntegerDatatype", "-9223372036854775809", false},
		{"IntegerDatatype", "-", false},
		{"IntegerDatatype", "-0", true},
		{"IntegerDatatype", "01", false},
		{"IntegerDatatype", "+1", false},
		{"NonNegativeIntegerDatatype", "18446744073709551615", true},
		{"NonNegativeIntegerDatatype", "18446744073709551616", false},
		{"NonNegativeIntegerDatatype", "99999999999999999999", false},
		{"NonNegativeIntegerDatatype", "-0", false},
		{"PositiveIntegerDatatype", "18446744073709551616", false},
		{"DecimalDatatype", "1e400", false},
		{"DecimalDatatype", "-", false},
		{"DecimalDatatype", `"1.5"`, false},
		{"DecimalDatatype", "-0", true},
	} {
		d, _ := oscaltypes.Lookup(tc.name)
		err := d.Validate(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("%s.Validate(%q) err=%v", tc.name, tc.in, err)
		}
		if err != nil && !errors.Is(err, oscaltypes.ErrNumberParse) {
			t.Fatalf("%s.Validate(%q) kind: %v", tc.name, tc.in, err)
		}
	}

	i, err := oscaltypes.ParseInteger("-0")
	if err != nil || i.Int64() != 0 || i.String() != "0" {
		t.Fatalf("ParseInteger(-0) = %v, %v", i.Int64(), err)
	}
	if _, err := oscaltypes.ParseNonNegativeInteger("18446744073709551616"); err == nil {
		t.Fatalf("overflow must not wrap")
	}
	var m measurement
	if err := json.Unmarshal([]byte(`{"offset":9223372036854775808}`), &m); err == nil || m.Offset.Int64() != 0 {
		t.Fatalf("JSON overflow accepted: %d %v", m.Offset.Int64(), err)
	}
}

func TestUnsigned_RejectsNegative(t *testing.T) {
	if _, err := oscaltypes.ParseNonNegativeInteger("-1"); !errors.Is(err, oscaltypes.ErrNumberParse) {
		t.Fatalf("expected number_parse, got %v", err)
	}
	n, err := oscaltypes.ParseNonNegativeInteger("0")
	if err != nil || n.Uint64() != 0 {
		t.Fatalf("ParseNonNegativeInteger(0) = %v, %v", n, err)
	}
	if _, err := oscaltypes.ParsePositiveInteger("-3"); err == nil {
		t.Fatalf("expected negative positive integer to fail")
	}
}

func TestPositiveInteger_BoundsAreAdvisoryByDefault(t *testing.T) {
	p, err := oscaltypes.ParsePositiveInteger("0")
	if err != nil || p.Uint64() != 0 {
		t.Fatalf("default options must accept 0: %v", err)
	}
	_, err = oscaltypes.ParsePositiveInteger("0", oscaltypes.WithBoundsEnforcement(true))
	if !errors.Is(err, oscaltypes.ErrNumberParse) {
		t.Fatalf("enforced bounds must reject 0, got %v", err)
	}
	if _, err := oscaltypes.PositiveIntegerOf(0, oscaltypes.WithBoundsEnforcement(true)); err == nil {
		t.Fatalf("PositiveIntegerOf(0) with bounds must fail")
	}
	if got := oscaltypes.NewPositiveInteger().Uint64(); got != 1 {
		t.Fatalf("NewPositiveInteger() = %d", got)
	}
	min := p.Datatype().Format().Bounds.Minimum
	if min == nil || *min != 1 {
		t.Fatalf("declared minimum = %v", min)
	}
}

func TestDecimal_ParseAndOf(t *testing.T) {
	d, err := oscaltypes.ParseDecimal("1.25")
	if err != nil || d.Float64() != 1.25 {
		t.Fatalf("ParseDecimal(1.25) = %v, %v", d.Float64(), err)
	}
	d, err = oscaltypes.ParseDecimal("1e3")
	if err != nil || d.String() != "1000" {
		t.Fatalf("ParseDecimal(1e3) = %q, %v", d.String(), err)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := oscaltypes.DecimalOf(v); err == nil {
			t.Fatalf("DecimalOf(%v) expected error", v)
		}
	}
	if _, err := oscaltypes.ParseDecimal("NaN"); err == nil {
		t.Fatalf("ParseDecimal(NaN) expected error")
	}
}

type measurement struct {
	Count   oscaltypes.PositiveInteger    `json:"count" yaml:"count"`
	Offset  oscaltypes.Integer            `json:"offset" yaml:"offset"`
	Ratio   oscaltypes.Decimal            `json:"ratio" yaml:"ratio"`
	Enabled oscaltypes.Boolean            `json:"enabled" yaml:"enabled"`
	Floor   oscaltypes.NonNegativeInteger `json:"floor" yaml:"floor"`
}

func TestScalars_JSONRoundTrip(t *testing.T) {
	in := []byte(`{"count":3,"offset":-7,"ratio":0.5,"enabled":true,"floor":0}`)
	var m measurement
	if err := json.Unmarshal(in, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Count.Uint64() != 3 || m.Offset.Int64() != -7 || m.Ratio.Float64() != 0.5 || !m.Enabled.Bool() {
		t.Fatalf("decoded %+v", m)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("round trip:\n got %s\nwant %s", out, in)
	}
}

func TestScalars_JSONRejectsWrongLiteral(t *testing.T) {
	var m measurement
	if err := json.Unmarshal([]byte(`{"floor":-1}`), &m); err == nil {
		t.Fatalf("expected negative floor to fail")
	}
	if err := json.Unmarshal([]byte(`{"enabled":"yes"}`), &m); err == nil {
		t.Fatalf("expected string boolean to fail")
	}
}

func TestScalars_YAMLRoundTrip(t *testing.T) {
	src := "count: 3\noffset: -7\nratio: 0.5\nenabled: true\nfloor: 0\n"
	var m measurement
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml marshal: %v", err)
	}
	if string(out) != src {
		t.Fatalf("yaml round trip:\n got %q\nwant %q", out, src)
	}
	if err := yaml.Unmarshal([]byte("floor: [1]\n"), &m); err == nil {
		t.Fatalf("expected sequence to fail")
	}
}
