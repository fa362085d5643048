// Package oscaltypes provides the validated scalar datatypes of the OSCAL
// metaschema:
//
// - One Go type per datatype (Date, UUID, Hostname, ...) whose zero value means unset
// - A Datatype descriptor per type exposing Name, Format and Storage, plus Validate
// - A stable error model: *Error with an ErrorKind, and Issues (JSON Pointer, code, message)
// - A registry keyed by datatype name (Lookup, Names, Datatypes)
// - Document decoding (DecodeJSON/DecodeYAML) with duplicate-key and depth enforcement
//
// Validation is configured with Options. Date checks are on by default;
// declared patterns and numeric bounds are only enforced when requested.
//
// Design policy:
// - Keep the datatypes and their descriptors in the root package.
// - Put JSON Schema export under jsonschema/, messages under i18n/, and the CLI under cmd/oscaltypes.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	d, err := oscaltypes.ParseDate("2024-02-10")
//	u, err := oscaltypes.ParseUUID(raw, oscaltypes.WithPatternEnforcement(true))
//
//	dt, _ := oscaltypes.Lookup("DateTimeWithTimezoneDatatype")
//	err = dt.Validate("2024-04-13T09:57:13Z")
//
//	err = oscaltypes.DecodeJSON(data, &catalog)
//	if iss, ok := oscaltypes.AsIssues(err); ok { ... }
package oscaltypes
