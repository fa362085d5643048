package oscaltypes

import "unicode/utf8"

type (
	ncNameKind struct{}
	tokenKind  struct{}
)

func (ncNameKind) desc() *descriptor { return ncNameType }
func (tokenKind) desc() *descriptor  { return tokenType }

var (
	ncNameType = newDescriptor("NCNameDatatype", StorageString, Format{
		Type:        "string",
		Description: "A non-colonized name as defined by Namespaces in XML 1.1.",
	}, validateNCName, nil)

	tokenType = newDescriptor("TokenDatatype", StorageString, Format{
		Type:        "string",
		Description: "A non-colonized name as defined by XML Schema Part 2: Datatypes Second Edition.",
		Pattern:     `^(\p{L}|_)(\p{L}|\p{N}|[.\-_])*$`,
	}, validateNCName, nil)
)

// IsNCNameStartChar reports whether r may begin an NCName
// (https://www.w3.org/TR/xml-names11/#NT-NameStartChar, colon excluded).
func IsNCNameStartChar(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', r == '_':
		return true
	}
	return inRanges(r, startRanges)
}

// IsNCNameChar reports whether r may appear after the first character.
func IsNCNameChar(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	case r == '_', r == '-', r == '.', r == 0xB7:
		return true
	}
	return inRanges(r, charRanges)
}

type runeRange struct{ lo, hi rune }

var startRanges = []runeRange{
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x370, 0x37D}, {0x37F, 0x1FFF},
	{0x200C, 0x200D}, {0x2070, 0x218F}, {0x2C00, 0x2FEF}, {0x3001, 0xD7FF},
	{0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

var charRanges = []runeRange{
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x300, 0x37D}, {0x37F, 0x1FFF},
	{0x200C, 0x200D}, {0x203F, 0x2040}, {0x2070, 0x218F}, {0x2C00, 0x2FEF},
	{0x3001, 0xD7FF}, {0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

func inRanges(r rune, rs []runeRange) bool {
	for _, rr := range rs {
		if r < rr.lo {
			return false
		}
		if r <= rr.hi {
			return true
		}
	}
	return false
}

// validateNCName accepts the empty string.
func validateNCName(_ *descriptor, raw string, _ Options) error {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		bad := r == utf8.RuneError && size == 1
		if i == 0 {
			if bad || !IsNCNameStartChar(r) {
				return newError(KindIdentifierIllegalFirstChar, "", nil)
			}
		} else if bad || !IsNCNameChar(r) {
			return newError(KindIdentifierIllegalChar, "", nil)
		}
		i += size
	}
	return nil
}

// NCName is an XML non-colonized name. The empty name is valid and reports
// IsZero.
type NCName struct{ text[ncNameKind] }

func ParseNCName(raw string, opts ...Option) (NCName, error) {
	t, err := parseText[ncNameKind](raw, buildOptions(opts))
	return NCName{t}, err
}

// Token is an NCName used as an identifier in OSCAL documents.
type Token struct{ text[tokenKind] }

func ParseToken(raw string, opts ...Option) (Token, error) {
	t, err := parseText[tokenKind](raw, buildOptions(opts))
	return Token{t}, err
}

// TokenOf wraps an already validated name.
func TokenOf(n NCName) Token { return Token{text[tokenKind]{s: n.s}} }

// NCName returns the underlying name.
func (t Token) NCName() NCName { return NCName{text[ncNameKind]{s: t.s}} }
