package oscaltypes

import (
	"encoding/base64"
	"net/netip"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
)

type (
	stringKind      struct{}
	base64Kind      struct{}
	emailKind       struct{}
	hostnameKind    struct{}
	ipv4AddressKind struct{}
	ipv6AddressKind struct{}
)

func (stringKind) desc() *descriptor      { return stringType }
func (base64Kind) desc() *descriptor      { return base64Type }
func (emailKind) desc() *descriptor       { return emailType }
func (hostnameKind) desc() *descriptor    { return hostnameType }
func (ipv4AddressKind) desc() *descriptor { return ipv4AddressType }
func (ipv6AddressKind) desc() *descriptor { return ipv6AddressType }

const (
	ipv4Pattern = `^((25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9])\.){3}(25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9])$`
	ipv6Pattern = `^(([0-9a-fA-F]{1,4}:){7,7}[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,7}:|([0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,5}(:[0-9a-fA-F]{1,4}){1,2}|([0-9a-fA-F]{1,4}:){1,4}(:[0-9a-fA-F]{1,4}){1,3}|([0-9a-fA-F]{1,4}:){1,3}(:[0-9a-fA-F]{1,4}){1,4}|([0-9a-fA-F]{1,4}:){1,2}(:[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:((:[0-9a-fA-F]{1,4}){1,6})|:((:[0-9a-fA-F]{1,4}){1,7}|:)|[fF][eE]80:(:[0-9a-fA-F]{0,4}){0,4}%[0-9a-zA-Z]{1,}|::([fF]{4}(:0{1,4}){0,1}:){0,1}((25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9]).){3,3}(25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9])|([0-9a-fA-F]{1,4}:){1,4}:((25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9]).){3,3}(25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9][0-9]|[0-9]))$`
)

var (
	stringType = newDescriptor("StringDatatype", StorageString, Format{
		Type:            "string",
		Description:     "A non-empty string with leading and trailing whitespace disallowed. Whitespace is: U+9, U+10, U+32 or [ \n\t]+",
		Pattern:         `^\S(.*\S)?$`,
		ContentEncoding: "string",
	}, validateTrimmed, nil)

	base64Type = newDescriptor("Base64Datatype", StorageString, Format{
		Type:            "string",
		Description:     "Binary data encoded using the Base 64 encoding algorithm as defined by RFC4648.",
		Pattern:         `^[0-9A-Za-z+\/]+={0,2}$`,
		ContentEncoding: "base64",
	}, permissive, tagRule("base64"))

	emailType = newDescriptor("EmailAddressDatatype", StorageString, Format{
		Type:        "string",
		Description: "An email address string formatted according to RFC 6531.",
		Pattern:     `^.+@.+$`,
		Format:      "email",
	}, permissive, tagRule("email"))

	hostnameType = newDescriptor("HostnameDatatype", StorageString, Format{
		Type:        "string",
		Description: "An internationalized Internet host name string formatted according to section 2.3.2.3 of RFC5890.",
		Format:      "idn-hostname",
	}, permissive, validateIDNHostname)

	ipv4AddressType = newDescriptor("IPV4AddressDatatype", StorageString, Format{
		Type:        "string",
		Description: "An Internet Protocol version 4 address represented using dotted-quad syntax as defined in section 3.2 of RFC2673.",
		Format:      "ipv4",
		Pattern:     ipv4Pattern,
	}, validateAddr(netip.Addr.Is4), nil)

	ipv6AddressType = newDescriptor("IPV6AddressDatatype", StorageString, Format{
		Type:        "string",
		Description: "An Internet Protocol version 6 address represented using the syntax defined in section 2.2 of RFC3513.",
		Format:      "ipv6",
		Pattern:     ipv6Pattern,
	}, validateAddr(netip.Addr.Is6), nil)
)

func validateTrimmed(_ *descriptor, raw string, _ Options) error {
	if strings.TrimSpace(raw) != raw {
		return newError(KindStringParse, "leading and trailing whitespace is not allowed", nil)
	}
	return nil
}

// formatValidator is shared; validator.Validate is safe for concurrent use.
var formatValidator = sync.OnceValue(func() *validator.Validate { return validator.New() })

// tagRule checks raw against a single validator tag.
func tagRule(tag string) validateFunc {
	return func(d *descriptor, raw string, _ Options) error {
		if err := formatValidator().Var(raw, tag); err != nil {
			return newError(KindStringParse, "value is not a valid "+tag+" for "+d.name, err)
		}
		return nil
	}
}

// validateIDNHostname maps U-labels to their ASCII form first so that the
// RFC 1123 check sees only LDH labels.
func validateIDNHostname(d *descriptor, raw string, o Options) error {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(raw, "."))
	if err != nil {
		return newError(KindStringParse, "value is not a valid host name", err)
	}
	return tagRule("hostname_rfc1123")(d, ascii, o)
}

func validateAddr(family func(netip.Addr) bool) validateFunc {
	return func(_ *descriptor, raw string, _ Options) error {
		a, err := netip.ParseAddr(raw)
		if err != nil {
			return newError(KindAddressParse, "", err)
		}
		if !family(a) || a.Zone() != "" {
			return newError(KindAddressParse, "wrong address family", nil)
		}
		return nil
	}
}

// String is OSCAL's general text type: no leading or trailing whitespace.
// The empty string passes validation; the declared pattern requires at least
// one character and is checked under WithPatternEnforcement. A parsed ""
// reports IsZero like the unset value.
type String struct{ text[stringKind] }

func ParseString(raw string, opts ...Option) (String, error) {
	t, err := parseText[stringKind](raw, buildOptions(opts))
	return String{t}, err
}

// Base64 holds base64 text. Without pattern enforcement any text is stored.
type Base64 struct{ text[base64Kind] }

func ParseBase64(raw string, opts ...Option) (Base64, error) {
	t, err := parseText[base64Kind](raw, buildOptions(opts))
	return Base64{t}, err
}

// EncodeBase64 stores the standard padded encoding of b.
func EncodeBase64(b []byte) Base64 {
	return Base64{text[base64Kind]{s: base64.StdEncoding.EncodeToString(b)}}
}

// Bytes decodes the stored text.
func (b Base64) Bytes() ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(b.s)
	if err != nil {
		return nil, newError(KindStringParse, "stored value is not base64", err)
	}
	return out, nil
}

type EmailAddress struct{ text[emailKind] }

func ParseEmailAddress(raw string, opts ...Option) (EmailAddress, error) {
	t, err := parseText[emailKind](raw, buildOptions(opts))
	return EmailAddress{t}, err
}

type Hostname struct{ text[hostnameKind] }

func ParseHostname(raw string, opts ...Option) (Hostname, error) {
	t, err := parseText[hostnameKind](raw, buildOptions(opts))
	return Hostname{t}, err
}

// IPv4Address is a dotted-quad address.
type IPv4Address struct{ text[ipv4AddressKind] }

func ParseIPv4Address(raw string, opts ...Option) (IPv4Address, error) {
	t, err := parseText[ipv4AddressKind](raw, buildOptions(opts))
	return IPv4Address{t}, err
}

// IPv4AddressOf renders a. It fails unless a is an IPv4 address.
func IPv4AddressOf(a netip.Addr) (IPv4Address, error) {
	if !a.Is4() {
		return IPv4Address{}, newError(KindAddressParse, "wrong address family", nil)
	}
	return IPv4Address{text[ipv4AddressKind]{s: a.String()}}, nil
}

// Addr parses the stored text. The zero value yields the invalid Addr.
func (a IPv4Address) Addr() netip.Addr { return mustAddr(a.s) }

// IPv6Address is an RFC 3513 address without a zone.
type IPv6Address struct{ text[ipv6AddressKind] }

func ParseIPv6Address(raw string, opts ...Option) (IPv6Address, error) {
	t, err := parseText[ipv6AddressKind](raw, buildOptions(opts))
	return IPv6Address{t}, err
}

// IPv6AddressOf renders a. It fails unless a is an IPv6 address without a zone.
func IPv6AddressOf(a netip.Addr) (IPv6Address, error) {
	if !a.Is6() || a.Zone() != "" {
		return IPv6Address{}, newError(KindAddressParse, "wrong address family", nil)
	}
	return IPv6Address{text[ipv6AddressKind]{s: a.String()}}, nil
}

func (a IPv6Address) Addr() netip.Addr { return mustAddr(a.s) }

func mustAddr(s string) netip.Addr {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}
	}
	return a
}
