package oscaltypes

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type scalarValue interface {
	~bool | ~int64 | ~uint64 | ~float64
}

// scalar is the shared implementation of the boolean and numeric datatypes.
type scalar[K textKind, N scalarValue] struct{ v N }

// parseLiteral decodes raw as a JSON literal into N and applies the
// descriptor's bounds when requested.
func parseLiteral[N scalarValue](raw string, d *descriptor, o Options) (N, error) {
	var n N
	kind := d.literalKind()
	lit := bytes.TrimSpace([]byte(raw))
	switch {
	case len(lit) == 0 || string(lit) == "null":
		return n, newError(kind, "empty value", nil)
	case d.storage == StorageUint64 && lit[0] == '-':
		return n, newError(kind, "negative value for an unsigned type", nil)
	case (d.storage == StorageInt64 || d.storage == StorageUint64) && bytes.ContainsAny(lit, ".eE"):
		return n, newError(kind, "fractional value for an integer type", nil)
	}
	if !json.Valid(lit) {
		return n, newError(kind, "not a JSON literal", nil)
	}
	if err := convertLiteral(string(lit), &n); err != nil {
		return n, newError(kind, "", err)
	}
	if o.EnforceBounds && d.storage != StorageBool && !d.format.Bounds.Contains(toFloat(n)) {
		return n, newError(kind, "value outside the declared bounds of "+d.name, nil)
	}
	return n, nil
}

// convertLiteral converts an already well-formed JSON literal. Out-of-range
// numbers fail instead of wrapping.
func convertLiteral[N scalarValue](lit string, n *N) error {
	switch p := any(n).(type) {
	case *bool:
		switch lit {
		case "true":
			*p = true
		case "false":
			*p = false
		default:
			return fmt.Errorf("%s is not a boolean literal", lit)
		}
	case *int64:
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *uint64:
		v, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *float64:
		if lit[0] == '"' {
			return fmt.Errorf("%s is not a number literal", lit)
		}
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

func toFloat[N scalarValue](n N) float64 {
	switch v := any(n).(type) {
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func validateLiteral[N scalarValue](d *descriptor, raw string, o Options) error {
	_, err := parseLiteral[N](raw, d, o)
	return err
}

func (d *descriptor) literalKind() ErrorKind {
	if d.storage == StorageBool {
		return KindBooleanParse
	}
	return KindNumberParse
}

func parseScalar[K textKind, N scalarValue](raw string, o Options) (scalar[K, N], error) {
	var k K
	n, err := parseLiteral[N](raw, k.desc(), o)
	if err != nil {
		return scalar[K, N]{}, err
	}
	return scalar[K, N]{v: n}, nil
}

// String renders the canonical literal.
func (s scalar[K, N]) String() string { return formatLiteral(s.v) }

// Datatype returns the type-level descriptor. It works on the zero value.
func (s scalar[K, N]) Datatype() Datatype {
	var k K
	return k.desc()
}

func (s scalar[K, N]) MarshalJSON() ([]byte, error) { return []byte(formatLiteral(s.v)), nil }

func (s *scalar[K, N]) UnmarshalJSON(b []byte) error {
	return s.decodeScalar(b, DefaultOptions())
}

func (s scalar[K, N]) MarshalYAML() (any, error) { return s.v, nil }

func (s *scalar[K, N]) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		var k K
		d := k.desc()
		return newError(d.literalKind(), "expected a YAML scalar for "+d.name, nil)
	}
	return s.set(n.Value, DefaultOptions())
}

func (s *scalar[K, N]) decodeScalar(lit []byte, o Options) error {
	return s.set(string(lit), o)
}

func (s *scalar[K, N]) set(raw string, o Options) error {
	v, err := parseScalar[K, N](raw, o)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func formatLiteral[N scalarValue](n N) string {
	switch v := any(n).(type) {
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconvFormatFloat(v)
	}
	return ""
}

// strconvFormatFloat renders a float64 using the shortest JSON-compatible representation.
func strconvFormatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
