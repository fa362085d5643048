package oscaltypes

import "sort"

// registry maps every type name to its descriptor. It is built once and
// never mutated.
var registry = func() map[string]*descriptor {
	all := []*descriptor{
		booleanType,
		integerType,
		nonNegativeIntegerType,
		positiveIntegerType,
		decimalType,
		stringType,
		base64Type,
		emailType,
		hostnameType,
		ipv4AddressType,
		ipv6AddressType,
		ncNameType,
		tokenType,
		dateType,
		dateTimeType,
		dateTimeWithTimezoneType,
		dayTimeDurationType,
		yearMonthDurationType,
		uriType,
		uriReferenceType,
		uuidType,
	}
	m := make(map[string]*descriptor, len(all))
	for _, d := range all {
		if _, dup := m[d.name]; dup {
			panic("oscaltypes: duplicate datatype " + d.name)
		}
		m[d.name] = d
	}
	return m
}()

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Datatype, error) {
	d, ok := registry[name]
	if !ok {
		return nil, newError(KindUnrecognizedTypeName, name, nil)
	}
	return d, nil
}

// StorageKind returns the Go storage type name for a registered type, for
// example "int64" or "string".
func StorageKind(name string) (string, error) {
	d, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return d.Storage().String(), nil
}

// ReferenceKind returns the Go type used to pass a value of the type by
// reference, for example "*uint64".
func ReferenceKind(name string) (string, error) {
	d, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return d.Storage().Reference(), nil
}

// Names returns every registered name in ascending order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Datatypes returns every registered descriptor ordered by name.
func Datatypes() []Datatype {
	names := Names()
	out := make([]Datatype, len(names))
	for i, n := range names {
		out[i] = registry[n]
	}
	return out
}
