package oscaltypes

import (
	"strconv"
	"strings"
)

// pathRef builds RFC 6901 JSON Pointers while the decoder walks a document.
// Each step copies, so sibling paths never share a backing array.
type pathRef struct {
	parts []string
}

func (p pathRef) Field(name string) pathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// issue builds an Issue at p. kv are key/value pairs stored in Params.
func (p pathRef) issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	for i := 0; i+1 < len(kv); i += 2 {
		if m == nil {
			m = map[string]any{}
		}
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
