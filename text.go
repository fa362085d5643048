package oscaltypes

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// textKind binds a text instantiation to its type-level descriptor.
type textKind interface {
	desc() *descriptor
}

// canonicalizer is implemented by kinds whose stored form is a normalized
// rendering of the input rather than the input itself.
type canonicalizer interface {
	canonical(raw string) string
}

// text is the shared implementation of every string-backed datatype. The
// exported types embed it and add their own accessors.
type text[K textKind] struct{ s string }

func parseText[K textKind](raw string, o Options) (text[K], error) {
	var k K
	if err := k.desc().check(raw, o); err != nil {
		return text[K]{}, err
	}
	if c, ok := any(k).(canonicalizer); ok {
		raw = c.canonical(raw)
	}
	return text[K]{s: raw}, nil
}

// String returns the canonical textual form.
func (t text[K]) String() string { return t.s }

// IsZero reports whether the stored text is empty. For the types that accept
// "" (String, NCName, Token, URIReference and the permissive formats) an
// explicitly parsed empty value is indistinguishable from the unset one.
func (t text[K]) IsZero() bool { return t.s == "" }

// Datatype returns the type-level descriptor. It works on the zero value.
func (t text[K]) Datatype() Datatype {
	var k K
	return k.desc()
}

func (t text[K]) MarshalText() ([]byte, error) { return []byte(t.s), nil }

func (t *text[K]) UnmarshalText(b []byte) error {
	return t.set(string(b), DefaultOptions())
}

func (t text[K]) MarshalJSON() ([]byte, error) { return json.Marshal(t.s) }

func (t *text[K]) UnmarshalJSON(b []byte) error {
	return t.decodeScalar(b, DefaultOptions())
}

func (t text[K]) MarshalYAML() (any, error) { return t.s, nil }

func (t *text[K]) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return newError(KindStringParse, "expected a YAML scalar", nil)
	}
	return t.set(n.Value, DefaultOptions())
}

// decodeScalar constructs from a JSON literal under the given options. The
// document decoder calls it for every text leaf.
func (t *text[K]) decodeScalar(lit []byte, o Options) error {
	var s string
	if err := json.Unmarshal(lit, &s); err != nil {
		return newError(KindStringParse, "expected a JSON string", err)
	}
	return t.set(s, o)
}

func (t *text[K]) decodeText(s string, o Options) error { return t.set(s, o) }

// set assigns only after a successful parse, so a failed decode leaves the
// receiver untouched.
func (t *text[K]) set(raw string, o Options) error {
	v, err := parseText[K](raw, o)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
