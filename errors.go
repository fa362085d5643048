package oscaltypes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/oscaltypes/i18n"
)

// ErrorKind classifies why a datatype value could not be constructed.
type ErrorKind uint8

const (
	KindAddressParse ErrorKind = iota + 1
	KindBooleanParse
	KindNumberParse
	KindUUIDParse
	KindDateParse
	KindDurationParse
	KindStringParse
	KindURIParse
	KindURIMustBeAbsolute
	KindIdentifierIllegalFirstChar
	KindIdentifierIllegalChar
	KindUnrecognizedTypeName
)

var kindCodes = [...]string{
	KindAddressParse:               "address_parse",
	KindBooleanParse:               "boolean_parse",
	KindNumberParse:                "number_parse",
	KindUUIDParse:                  "uuid_parse",
	KindDateParse:                  "date_parse",
	KindDurationParse:              "duration_parse",
	KindStringParse:                "string_parse",
	KindURIParse:                   "uri_parse",
	KindURIMustBeAbsolute:          "uri_must_be_absolute",
	KindIdentifierIllegalFirstChar: "identifier_illegal_first_char",
	KindIdentifierIllegalChar:      "identifier_illegal_char",
	KindUnrecognizedTypeName:       "unrecognized_type_name",
}

// String returns the stable snake_case code of the kind.
func (k ErrorKind) String() string {
	if int(k) < len(kindCodes) && kindCodes[k] != "" {
		return kindCodes[k]
	}
	return fmt.Sprintf("error_kind(%d)", uint8(k))
}

// Error is returned by every validation and construction path. Detail holds
// the offending type name for KindUnrecognizedTypeName and a free-form reason
// for KindStringParse and KindNumberParse. Cause is the underlying parser
// error when one exists.
type Error struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := i18n.T(e.Kind.String(), nil)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so the Err* sentinels work with
// errors.Is regardless of detail and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrAddressParse               = &Error{Kind: KindAddressParse}
	ErrBooleanParse               = &Error{Kind: KindBooleanParse}
	ErrNumberParse                = &Error{Kind: KindNumberParse}
	ErrUUIDParse                  = &Error{Kind: KindUUIDParse}
	ErrDateParse                  = &Error{Kind: KindDateParse}
	ErrDurationParse              = &Error{Kind: KindDurationParse}
	ErrStringParse                = &Error{Kind: KindStringParse}
	ErrURIParse                   = &Error{Kind: KindURIParse}
	ErrURIMustBeAbsolute          = &Error{Kind: KindURIMustBeAbsolute}
	ErrIdentifierIllegalFirstChar = &Error{Kind: KindIdentifierIllegalFirstChar}
	ErrIdentifierIllegalChar      = &Error{Kind: KindIdentifierIllegalChar}
	ErrUnrecognizedTypeName       = &Error{Kind: KindUnrecognizedTypeName}
)

func newError(kind ErrorKind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// AsError extracts an *Error from err using errors.As.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Issue codes reported by the document decoder.
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeUnknownKey    = "unknown_key"
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
)

// Issue is a single document decoding failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /metadata/last-modified).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // The datatype *Error when Code is invalid_format.
	// Params carries structured parameters such as the error kind code and the
	// source line for YAML input.
	Params map[string]any
}

// Issues is a collection of decoding failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_format at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
