package oscaltypes

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type (
	uriKind          struct{}
	uriReferenceKind struct{}
	uuidKind         struct{}
)

func (uriKind) desc() *descriptor          { return uriType }
func (uriReferenceKind) desc() *descriptor { return uriReferenceType }
func (uuidKind) desc() *descriptor         { return uuidType }

// canonical stores the lowercase hyphenated rendering; check already ran.
func (uuidKind) canonical(raw string) string {
	u, err := uuid.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}

var (
	uriType = newDescriptor("URIDatatype", StorageString, Format{
		Type:        "string",
		Description: "A universal resource identifier (URI) formatted according to RFC3986.",
		Format:      "uri",
		Pattern:     `^[a-zA-Z][a-zA-Z0-9+\-.]+:.+$`,
	}, validateURI, nil)

	uriReferenceType = newDescriptor("URIReferenceDatatype", StorageString, Format{
		Type:        "string",
		Description: "A URI Reference, either a URI or a relative-reference, formatted according to section 4.1 of RFC3986.",
		Format:      "uri-reference",
	}, validateURIReference, nil)

	uuidType = newDescriptor("UUIDDatatype", StorageString, Format{
		Type:        "string",
		Description: "A type 4 ('random' or 'pseudorandom') or type 5 UUID per RFC 4122.",
		Format:      "uuid",
		Pattern:     `^[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[45][0-9A-Fa-f]{3}-[89ABab][0-9A-Fa-f]{3}-[0-9A-Fa-f]{12}$`,
	}, validateUUID, nil)
)

// uriChars reports the first byte outside RFC 3986's unreserved, reserved
// and percent-encoded sets; net/url tolerates spaces and angle brackets.
func uriChars(raw string) error {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-._~:/?#[]@!$&'()*+,;=", c) >= 0:
		case c == '%':
			if i+2 >= len(raw) || !isHex(raw[i+1]) || !isHex(raw[i+2]) {
				return newError(KindURIParse, "malformed percent-encoding", nil)
			}
			i += 2
		default:
			return newError(KindURIParse, fmt.Sprintf("character %q is not allowed", c), nil)
		}
	}
	return nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func parseURL(raw string) (*url.URL, error) {
	if err := uriChars(raw); err != nil {
		return nil, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, newError(KindURIParse, "", err)
	}
	return u, nil
}

func validateURI(_ *descriptor, raw string, _ Options) error {
	u, err := parseURL(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		return newError(KindURIMustBeAbsolute, "", nil)
	}
	return nil
}

func validateURIReference(_ *descriptor, raw string, _ Options) error {
	_, err := parseURL(raw)
	return err
}

func validateUUID(_ *descriptor, raw string, _ Options) error {
	if _, err := uuid.Parse(raw); err != nil {
		return newError(KindUUIDParse, "", err)
	}
	return nil
}

// URI is an absolute URI; a scheme is required. Use URIReference for
// fragments and relative paths.
type URI struct{ text[uriKind] }

func ParseURI(raw string, opts ...Option) (URI, error) {
	t, err := parseText[uriKind](raw, buildOptions(opts))
	return URI{t}, err
}

// URL parses the stored text. The zero value yields an empty URL.
func (u URI) URL() *url.URL { return mustURL(u.s) }

// URIReference is a URI or a relative reference.
type URIReference struct{ text[uriReferenceKind] }

func ParseURIReference(raw string, opts ...Option) (URIReference, error) {
	t, err := parseText[uriReferenceKind](raw, buildOptions(opts))
	return URIReference{t}, err
}

func (u URIReference) URL() *url.URL { return mustURL(u.s) }

func mustURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// UUID is stored in canonical lowercase hyphenated form whatever the input
// spelling (braces, urn:uuid: prefix, upper case).
type UUID struct{ text[uuidKind] }

func ParseUUID(raw string, opts ...Option) (UUID, error) {
	t, err := parseText[uuidKind](raw, buildOptions(opts))
	return UUID{t}, err
}

// NewUUID returns a random (version 4) UUID.
func NewUUID() UUID { return UUIDOf(uuid.New()) }

func UUIDOf(u uuid.UUID) UUID { return UUID{text[uuidKind]{s: u.String()}} }

// Value returns the parsed UUID; uuid.Nil for the zero value.
func (u UUID) Value() uuid.UUID {
	v, err := uuid.Parse(u.s)
	if err != nil {
		return uuid.Nil
	}
	return v
}
